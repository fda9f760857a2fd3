package analytics

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"dashboard-analytics-service/internal/dashboard/core/domain"
)

const unknownBlockType = "unknown"

// AggregateLatencies groups per-block durations by block type. Workflow
// completion lines, lines without a block type and lines without a usable
// duration are skipped.
func AggregateLatencies(logs []domain.ExecutionLogEntry, m MessageMatcher) map[string]domain.LatencyStats {
	samples := make(map[string][]float64)

	for _, entry := range logs {
		if m.IsCompletion(entry.Message) {
			continue
		}
		blockType, ok := m.BlockType(entry.Message)
		if !ok || blockType == unknownBlockType {
			continue
		}
		latency, ok := ParseDuration(entry.Duration)
		if !ok {
			continue
		}
		samples[blockType] = append(samples[blockType], latency)
	}

	out := make(map[string]domain.LatencyStats, len(samples))
	for blockType, values := range samples {
		if len(values) == 0 {
			continue
		}
		out[blockType] = describe(values)
	}
	return out
}

// ParseDuration reads a "<number>ms" duration. Missing, unparseable and
// non-positive values are rejected.
func ParseDuration(d *string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimSpace(*d), "ms")
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// Percentile returns the nearest-rank percentile p (0-100) of values:
// sorted ascending, index max(0, ceil(p*n/100)-1). Empty input gives 0.
func Percentile(values []float64, p int) float64 {
	sorted := slices.Clone(values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	// integer ceil keeps 99*n/100 exact
	idx := (p*n+99)/100 - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

func describe(values []float64) domain.LatencyStats {
	sorted := slices.Clone(values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return domain.LatencyStats{
		AvgLatency: sum / float64(len(sorted)),
		P50:        percentileSorted(sorted, 50),
		P75:        percentileSorted(sorted, 75),
		P99:        percentileSorted(sorted, 99),
		P100:       percentileSorted(sorted, 100),
		Samples:    len(sorted),
	}
}

// blockLatencyTable flattens the latency map into a list ordered by type.
func blockLatencyTable(stats map[string]domain.LatencyStats) []domain.BlockLatency {
	out := make([]domain.BlockLatency, 0, len(stats))
	for blockType, s := range stats {
		out = append(out, domain.BlockLatency{BlockType: blockType, LatencyStats: s})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BlockType < out[j].BlockType
	})
	return out
}
