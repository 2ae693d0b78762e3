package news

import "github.com/deusflow/ligawatch/internal/logger"

// Stats counts what each pipeline stage dropped.
type Stats struct {
	Raw             int `json:"raw"`
	Invalid         int `json:"invalid"`
	OutOfWindow     int `json:"out_of_window"`
	ExactDuplicates int `json:"exact_duplicates"`
	NearDuplicates  int `json:"near_duplicates"`
	Kept            int `json:"kept"`
}

// Result is the ordered list of surviving items and the per-stage counts.
type Result struct {
	Items []Item
	Stats Stats
}

// Pipeline turns the concatenated raw items of a run into the digest list.
// A zero Threshold means DefaultThreshold; a nil Near uses TFIDFDeduper.
type Pipeline struct {
	Window    Window
	Threshold float64
	Near      NearDeduper
}

// Process runs normalize, window, exact dedup, near dedup and categorize,
// in that order. Relative input order is preserved throughout.
func (p Pipeline) Process(raw []RawItem) Result {
	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	near := p.Near
	if near == nil {
		near = TFIDFDeduper{}
	}

	var st Stats
	st.Raw = len(raw)

	normalized := make([]Item, 0, len(raw))
	for _, r := range raw {
		it, ok := Normalize(r)
		if !ok {
			logger.Debug("dropping invalid item", "source", r.Source, "title", r.Title, "url", r.URL)
			continue
		}
		normalized = append(normalized, it)
	}
	st.Invalid = len(raw) - len(normalized)

	windowed := FilterWindow(normalized, p.Window)
	st.OutOfWindow = len(normalized) - len(windowed)

	unique := DedupeExact(windowed)
	st.ExactDuplicates = len(windowed) - len(unique)

	kept := near.NearDedupe(unique, threshold)
	st.NearDuplicates = len(unique) - len(kept)

	out := make([]Item, len(kept))
	for i, it := range kept {
		it.Category = Categorize(it.Title)
		out[i] = it
	}
	st.Kept = len(out)

	logger.Info("pipeline finished",
		"raw", st.Raw,
		"invalid", st.Invalid,
		"out_of_window", st.OutOfWindow,
		"exact_dups", st.ExactDuplicates,
		"near_dups", st.NearDuplicates,
		"kept", st.Kept)

	return Result{Items: out, Stats: st}
}

// GroupByCategory buckets items by category, preserving order inside each.
func GroupByCategory(items []Item) map[Category][]Item {
	groups := make(map[Category][]Item)
	for _, it := range items {
		groups[it.Category] = append(groups[it.Category], it)
	}
	return groups
}
