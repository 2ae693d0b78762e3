package rss

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/news"
	"github.com/deusflow/ligawatch/internal/textclean"
)

const userAgent = "ligawatch/1.0 (+https://github.com/deusflow/ligawatch)"

// DefaultFeeds are the Spanish sports feeds polled when no feeds file exists.
var DefaultFeeds = []string{
	"https://e00-marca.uecdn.es/rss/futbol/laliga.xml",
	"https://as.com/rss/tags/e/l/laliga/a/",
	"https://www.relevo.com/rss",
	"https://feeds.elpais.com/mrss-s/pages/ep/site/elpais.com/section/deportes/portada",
	"https://e00-elmundo.uecdn.es/elmundo/rss/deportes.xml",
	"https://www.abc.es/rss/feeds/abc_Deportes.xml",
	"https://www.rtve.es/api/rss/deportes",
	"https://www.europapress.es/rss/rss.aspx?ch=273",
	"https://www.efe.com/efe/espana/deportes/123/rss",
}

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the feed list from a YAML file. A missing file yields
// DefaultFeeds; an unreadable or malformed one is an error.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("feeds file not found, using defaults", "path", path, "count", len(DefaultFeeds))
		return DefaultFeeds, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Feeds) == 0 {
		return DefaultFeeds, nil
	}
	return cfg.Feeds, nil
}

// Source polls a fixed list of feeds. It ignores the query.
type Source struct {
	feeds    []string
	client   *http.Client
	location *time.Location
	timeout  time.Duration
	now      func() time.Time
}

func New(feeds []string, client *http.Client, loc *time.Location) *Source {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Source{
		feeds:    feeds,
		client:   client,
		location: loc,
		timeout:  client.Timeout,
		now:      time.Now,
	}
}

func (s *Source) Kind() news.SourceKind { return news.SourceFeed }

// Fetch downloads and parses every feed. A feed that cannot be fetched or
// parsed is logged and skipped; it never fails the run.
func (s *Source) Fetch(ctx context.Context, _ string) ([]news.RawItem, error) {
	parser := gofeed.NewParser()
	parser.Client = s.client
	parser.UserAgent = userAgent

	var items []news.RawItem
	successCount := 0

	for _, url := range s.feeds {
		feed, err := s.parse(ctx, parser, url)
		if err != nil {
			logger.Warn("error parsing feed", "url", url, "error", err)
			continue
		}
		before := len(items)
		for _, e := range feed.Items {
			if e == nil {
				continue
			}
			items = append(items, news.RawItem{
				Source:      news.SourceFeed,
				Title:       textclean.CleanText(e.Title),
				URL:         e.Link,
				PublishedAt: s.published(e),
			})
		}
		successCount++
		logger.Debug("feed loaded", "url", url, "count", len(items)-before)
	}

	logger.Info("processed feeds", "ok", successCount, "total", len(s.feeds), "count", len(items))
	return items, nil
}

func (s *Source) parse(ctx context.Context, parser *gofeed.Parser, url string) (*gofeed.Feed, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return parser.ParseURLWithContext(url, ctx)
}

// published prefers the raw date string so zone-less values are read in the
// configured location, then the library's parsed fields, then now.
func (s *Source) published(e *gofeed.Item) time.Time {
	if t, ok := news.ParseTimestamp(e.Published, s.location); ok {
		return t
	}
	if e.PublishedParsed != nil {
		return *e.PublishedParsed
	}
	if e.UpdatedParsed != nil {
		return *e.UpdatedParsed
	}
	return s.now()
}
