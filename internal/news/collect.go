package news

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deusflow/ligawatch/internal/logger"
)

// Source is one upstream adapter. A source without credentials returns no
// items and no error.
type Source interface {
	Kind() SourceKind
	Fetch(ctx context.Context, query string) ([]RawItem, error)
}

// SourceResult is the outcome of a single adapter call.
type SourceResult struct {
	Kind     SourceKind
	Items    []RawItem
	Err      error
	Duration time.Duration
}

// SourceError reports which source failed a run.
type SourceError struct {
	Kind SourceKind
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Collect calls every source concurrently and concatenates their items in
// the order the sources were given. With tolerate unset the first failing
// source (in that order) aborts the run.
func Collect(ctx context.Context, sources []Source, query string, tolerate bool) ([]RawItem, []SourceResult, error) {
	results := make([]SourceResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			start := time.Now()
			items, err := src.Fetch(ctx, query)
			results[i] = SourceResult{
				Kind:     src.Kind(),
				Items:    items,
				Err:      err,
				Duration: time.Since(start),
			}
		}(i, src)
	}
	wg.Wait()

	var raw []RawItem
	for _, r := range results {
		if r.Err != nil {
			if !tolerate {
				return nil, results, &SourceError{Kind: r.Kind, Err: r.Err}
			}
			logger.Warn("source failed, skipping", "source", r.Kind, "error", r.Err)
			continue
		}
		logger.Info("source collected", "source", r.Kind, "count", len(r.Items), "duration", r.Duration)
		raw = append(raw, r.Items...)
	}
	return raw, results, nil
}
