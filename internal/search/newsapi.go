package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/news"
)

const newsAPIEndpoint = "https://newsapi.org/v2/everything"

// NewsAPI queries newsapi.org's /v2/everything endpoint.
type NewsAPI struct {
	key  string
	opts Options
}

func NewNewsAPI(key string, opts Options) *NewsAPI {
	return &NewsAPI{key: key, opts: opts.withDefaults(newsAPIEndpoint)}
}

func (n *NewsAPI) Kind() news.SourceKind { return news.SourceNewsAPI }

type newsAPIRecord struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

func (n *NewsAPI) Fetch(ctx context.Context, query string) ([]news.RawItem, error) {
	if n.key == "" {
		logger.Debug("newsapi disabled, no key")
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "es")
	params.Set("from", n.opts.Now().Add(-24*time.Hour).UTC().Format(time.RFC3339))
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "100")

	var resp struct {
		Status   string            `json:"status"`
		Code     string            `json:"code"`
		Message  string            `json:"message"`
		Articles []json.RawMessage `json:"articles"`
	}
	headers := map[string]string{"X-Api-Key": n.key}
	if err := getJSON(ctx, n.opts.Client, n.opts.Endpoint, params, headers, &resp); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("newsapi: %s: %s", resp.Code, resp.Message)
	}

	return decodeEntries(news.SourceNewsAPI, resp.Articles, func(r newsAPIRecord) article {
		return article{Title: r.Title, URL: r.URL, Published: r.PublishedAt}
	}, n.opts), nil
}
