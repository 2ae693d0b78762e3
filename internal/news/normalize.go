package news

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// gdeltLayout is the compact UTC stamp used by the GDELT doc API ("seendate").
const gdeltLayout = "20060102T150405Z"

// NormalizeURL drops everything from the first '?' or '#' onward.
// Empty input is returned unchanged.
func NormalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// Fingerprint is the exact-duplicate identity of an article:
// hex(sha256(canonicalURL + "|" + title)).
func Fingerprint(canonicalURL, title string) string {
	sum := sha256.Sum256([]byte(canonicalURL + "|" + title))
	return hex.EncodeToString(sum[:])
}

// Normalize validates a raw item and converts it into an Item. Items
// without a title or URL are rejected.
func Normalize(raw RawItem) (Item, bool) {
	title := strings.TrimSpace(raw.Title)
	link := strings.TrimSpace(raw.URL)
	if title == "" || link == "" {
		return Item{}, false
	}

	canonical := NormalizeURL(link)
	return Item{
		Source:      raw.Source,
		Title:       title,
		URL:         canonical,
		PublishedAt: raw.PublishedAt.UTC(),
		Fingerprint: Fingerprint(canonical, title),
	}, true
}

// ParseTimestamp parses a publish date in any of the formats seen across
// feeds and search APIs. Values without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(gdeltLayout, s); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TimestampOrNow is ParseTimestamp with the adapter fallback: an unparseable
// date becomes the current time instead of dropping the entry.
func TimestampOrNow(s string, loc *time.Location, now func() time.Time) time.Time {
	if t, ok := ParseTimestamp(s, loc); ok {
		return t
	}
	if now == nil {
		return time.Now()
	}
	return now()
}
