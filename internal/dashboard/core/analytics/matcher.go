package analytics

import (
	"regexp"
	"slices"
	"strings"
)

// MessageMatcher recovers structure from free-text execution log messages.
// Latency aggregation and outcome classification only talk to this interface,
// so a structured log schema can replace the phrase heuristics later.
type MessageMatcher interface {
	// IsCompletion reports whether the message marks the end of a whole
	// workflow run rather than a single block.
	IsCompletion(message string) bool
	// IsSuccess reports whether the message carries a success phrase.
	IsSuccess(message string) bool
	// BlockType extracts the block type of a per-block log line.
	BlockType(message string) (string, bool)
}

var (
	completionPhrases = []string{
		"workflow executed successfully",
		"execution succeeded",
		"completed successfully",
		"workflow execution completed",
		"finished successfully",
	}

	blockLinePattern = regexp.MustCompile(`Block\s.*?\(([^()]+)\):`)
)

// PhraseMatcher matches lower-cased substrings. Messages phrased outside the
// configured lists are treated as not successful.
type PhraseMatcher struct {
	CompletionPhrases []string
	SuccessPhrases    []string
	BlockPattern      *regexp.Regexp
}

func DefaultMatcher() *PhraseMatcher {
	return &PhraseMatcher{
		CompletionPhrases: slices.Clone(completionPhrases),
		SuccessPhrases:    slices.Clone(completionPhrases),
		BlockPattern:      blockLinePattern,
	}
}

func (m *PhraseMatcher) IsCompletion(message string) bool {
	return containsAny(message, m.CompletionPhrases)
}

func (m *PhraseMatcher) IsSuccess(message string) bool {
	return containsAny(message, m.SuccessPhrases)
}

func (m *PhraseMatcher) BlockType(message string) (string, bool) {
	pattern := m.BlockPattern
	if pattern == nil {
		pattern = blockLinePattern
	}
	match := pattern.FindStringSubmatch(message)
	if len(match) < 2 {
		return "", false
	}
	blockType := strings.TrimSpace(match[1])
	if blockType == "" {
		return "", false
	}
	return blockType, true
}

func containsAny(message string, phrases []string) bool {
	lower := strings.ToLower(message)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
