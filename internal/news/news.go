package news

import (
	"regexp"
	"strings"
	"time"
)

// SourceKind identifies the adapter an item was collected from.
type SourceKind string

const (
	SourceFeed    SourceKind = "rss"
	SourceBing    SourceKind = "bing"
	SourceNewsAPI SourceKind = "newsapi"
	SourceGDELT   SourceKind = "gdelt"
)

// Category is the topic bucket assigned to every surviving item.
type Category string

const (
	CategoryTebas  Category = "Javier Tebas"
	CategoryLaLiga Category = "LaLiga"
)

// Categories returns the closed set of buckets in digest order.
func Categories() []Category {
	return []Category{CategoryTebas, CategoryLaLiga}
}

// RawItem is what a source adapter produces, before any validation.
type RawItem struct {
	Source      SourceKind
	Title       string
	URL         string
	PublishedAt time.Time
}

// Item is a normalized article. After the pipeline it also carries a category.
type Item struct {
	Source      SourceKind `json:"source"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	PublishedAt time.Time  `json:"published_at"`
	Fingerprint string     `json:"fingerprint"`
	Category    Category   `json:"category"`
}

// Run identifies one pipeline execution.
type Run struct {
	ID        string
	StartedAt time.Time
	Window    Window
}

var personKeywords = []string{"tebas"}

var organizationKeywords = []string{
	"laliga",
	"la liga",
	"liga de fútbol profesional",
	"liga española",
	"lfp",
}

// Categorize assigns the bucket for a title. The person wins over the
// organization, and the organization is the fallback for everything else.
func Categorize(title string) Category {
	text := strings.ToLower(title)
	switch {
	case containsAny(text, personKeywords):
		return CategoryTebas
	case containsAny(text, organizationKeywords):
		return CategoryLaLiga
	default:
		return CategoryLaLiga
	}
}

// containsAny matches phrases and long words as substrings, short tokens as
// whole words (so "lfp" does not match inside another word).
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		if strings.Contains(k, " ") || len(k) > 3 {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}

		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
