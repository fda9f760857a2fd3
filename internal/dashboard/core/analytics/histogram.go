package analytics

import (
	"cmp"
	"maps"
	"sort"
)

// Histogram counts occurrences per key. Each aggregation call builds its own.
type Histogram[K cmp.Ordered] struct {
	counts map[K]int
}

type Bucket[K cmp.Ordered] struct {
	Key   K
	Count int
}

func NewHistogram[K cmp.Ordered]() *Histogram[K] {
	return &Histogram[K]{counts: make(map[K]int)}
}

func (h *Histogram[K]) Add(key K) {
	h.counts[key]++
}

func (h *Histogram[K]) Merge(other *Histogram[K]) {
	for k, n := range other.counts {
		h.counts[k] += n
	}
}

func (h *Histogram[K]) Count(key K) int {
	return h.counts[key]
}

func (h *Histogram[K]) Len() int {
	return len(h.counts)
}

func (h *Histogram[K]) Map() map[K]int {
	return maps.Clone(h.counts)
}

// Sorted returns buckets by count descending, then key ascending.
func (h *Histogram[K]) Sorted() []Bucket[K] {
	out := make([]Bucket[K], 0, len(h.counts))
	for k, n := range h.counts {
		out = append(out, Bucket[K]{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
