package news

import "time"

// Window is the half-open publication interval [Start, End) a digest covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow anchors on the most recent local midnight in loc. It reaches
// back lookback hours and forward a full day, so "today" plus the trailing
// span are both retained.
func NewWindow(now time.Time, loc *time.Location, lookback time.Duration) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{
		Start: midnight.Add(-lookback),
		End:   midnight.Add(24 * time.Hour),
	}
}

// Contains reports whether t falls inside the window (start inclusive,
// end exclusive).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// FilterWindow keeps the items published inside w, preserving order.
func FilterWindow(items []Item, w Window) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if w.Contains(it.PublishedAt) {
			out = append(out, it)
		}
	}
	return out
}
