package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/news"
)

const bingEndpoint = "https://api.bing.microsoft.com/v7.0/news/search"

// Bing queries the Bing News Search v7 API.
type Bing struct {
	key  string
	opts Options
}

func NewBing(key string, opts Options) *Bing {
	return &Bing{key: key, opts: opts.withDefaults(bingEndpoint)}
}

func (b *Bing) Kind() news.SourceKind { return news.SourceBing }

type bingRecord struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	DatePublished string `json:"datePublished"`
}

func (b *Bing) Fetch(ctx context.Context, query string) ([]news.RawItem, error) {
	if b.key == "" {
		logger.Debug("bing disabled, no key")
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("mkt", "es-ES")
	params.Set("freshness", "Day")
	params.Set("count", "100")
	params.Set("sortBy", "Date")

	var resp struct {
		Value []json.RawMessage `json:"value"`
	}
	headers := map[string]string{"Ocp-Apim-Subscription-Key": b.key}
	if err := getJSON(ctx, b.opts.Client, b.opts.Endpoint, params, headers, &resp); err != nil {
		return nil, fmt.Errorf("bing: %w", err)
	}

	return decodeEntries(news.SourceBing, resp.Value, func(r bingRecord) article {
		return article{Title: r.Name, URL: r.URL, Published: r.DatePublished}
	}, b.opts), nil
}
