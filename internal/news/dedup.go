package news

import (
	"github.com/deusflow/ligawatch/internal/similarity"
)

// DefaultThreshold is the cosine similarity at or above which two titles
// count as the same story.
const DefaultThreshold = 0.88

// DedupeExact keeps the first item for every fingerprint, in input order.
func DedupeExact(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.Fingerprint]; dup {
			continue
		}
		seen[it.Fingerprint] = struct{}{}
		out = append(out, it)
	}
	return out
}

// NearDeduper removes items whose titles are near-identical to an earlier
// kept item. Implementations must keep the survivors in input order.
type NearDeduper interface {
	NearDedupe(items []Item, threshold float64) []Item
}

// TFIDFDeduper compares every pair of titles. Runs are bounded by daily
// article volume, so the quadratic pass is fine.
type TFIDFDeduper struct{}

func (TFIDFDeduper) NearDedupe(items []Item, threshold float64) []Item {
	if len(items) < 2 {
		return items
	}

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	sim := similarity.Matrix(titles)

	removed := make([]bool, len(items))
	for i := range items {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(items); j++ {
			if !removed[j] && sim[i][j] >= threshold {
				removed[j] = true
			}
		}
	}

	out := make([]Item, 0, len(items))
	for i, it := range items {
		if !removed[i] {
			out = append(out, it)
		}
	}
	return out
}
