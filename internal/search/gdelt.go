package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/deusflow/ligawatch/internal/news"
)

const gdeltEndpoint = "https://api.gdeltproject.org/api/v2/doc/doc"

// GDELT queries the GDELT 2.0 DOC API. It needs no credential.
type GDELT struct {
	opts Options
}

func NewGDELT(opts Options) *GDELT {
	return &GDELT{opts: opts.withDefaults(gdeltEndpoint)}
}

func (g *GDELT) Kind() news.SourceKind { return news.SourceGDELT }

type gdeltRecord struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	SeenDate string `json:"seendate"`
}

func (g *GDELT) Fetch(ctx context.Context, query string) ([]news.RawItem, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("(%s) sourcelang:spanish", query))
	params.Set("mode", "ArtList")
	params.Set("format", "json")
	params.Set("maxrecords", "250")
	params.Set("timespan", "1d")
	params.Set("sort", "DateDesc")

	var resp struct {
		Articles []json.RawMessage `json:"articles"`
	}
	if err := getJSON(ctx, g.opts.Client, g.opts.Endpoint, params, nil, &resp); err != nil {
		return nil, fmt.Errorf("gdelt: %w", err)
	}

	return decodeEntries(news.SourceGDELT, resp.Articles, func(r gdeltRecord) article {
		return article{Title: r.Title, URL: r.URL, Published: r.SeenDate}
	}, g.opts), nil
}
