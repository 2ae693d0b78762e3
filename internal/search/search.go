// Package search holds the keyword-search news API adapters. Each adapter
// asks for the last day of Spanish-language coverage matching a boolean-OR
// query and maps the provider's article records onto news.RawItem.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/news"
	"github.com/deusflow/ligawatch/internal/textclean"
)

const maxBodyBytes = 10 * 1024 * 1024

// Options are shared by every adapter. Endpoint overrides the provider URL.
type Options struct {
	Client   *http.Client
	Location *time.Location
	Endpoint string
	Now      func() time.Time
}

func (o Options) withDefaults(endpoint string) Options {
	if o.Client == nil {
		o.Client = &http.Client{Timeout: 20 * time.Second}
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Endpoint == "" {
		o.Endpoint = endpoint
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// getJSON performs one GET and decodes the body into out. Non-2xx statuses
// and undecodable bodies are errors.
func getJSON(ctx context.Context, client *http.Client, endpoint string, params url.Values, headers map[string]string, out any) error {
	u := endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}

// article is the common shape extracted from every provider's records.
type article struct {
	Title     string
	URL       string
	Published string
}

// decodeEntries unmarshals each raw record on its own so one malformed
// entry does not discard the rest.
func decodeEntries[T any](kind news.SourceKind, raw []json.RawMessage, pick func(T) article, opts Options) []news.RawItem {
	items := make([]news.RawItem, 0, len(raw))
	for i, msg := range raw {
		var rec T
		if err := json.Unmarshal(msg, &rec); err != nil {
			logger.Debug("skipping malformed entry", "source", kind, "index", i, "error", err)
			continue
		}
		a := pick(rec)
		items = append(items, news.RawItem{
			Source:      kind,
			Title:       textclean.CleanText(a.Title),
			URL:         a.URL,
			PublishedAt: news.TimestampOrNow(a.Published, opts.Location, opts.Now),
		})
	}
	return items
}
