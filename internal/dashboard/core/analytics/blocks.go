package analytics

import "dashboard-analytics-service/internal/dashboard/core/domain"

// ExtractBlocks returns the blocks of a workflow state as one list. A nil
// state or a malformed collection yields an empty list.
func ExtractBlocks(state *domain.WorkflowState) []domain.Block {
	if state == nil {
		return []domain.Block{}
	}
	blocks := state.Blocks.Blocks()
	if blocks == nil {
		return []domain.Block{}
	}
	return blocks
}

// IsBaseState reports whether the workflow still only holds its starter block.
func IsBaseState(w domain.Workflow) bool {
	blocks := ExtractBlocks(w.State)
	return len(blocks) == 1 && blocks[0].Type == domain.StarterType
}

// blockTypes counts typed blocks; blocks without a type are left out.
func blockTypes(blocks []domain.Block) *Histogram[string] {
	h := NewHistogram[string]()
	for _, b := range blocks {
		if b.Type == "" {
			continue
		}
		h.Add(b.Type)
	}
	return h
}
