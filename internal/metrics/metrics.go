package metrics

import (
	"sync"
	"time"

	"github.com/deusflow/ligawatch/internal/news"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	Runs            int64
	FailedRuns      int64
	ItemsCollected  int64
	ItemsKept       int64
	DuplicatesFound int64
	DigestsSent     int64
	NoticesSent     int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration

	// Status
	LastRunID     string
	LastRunTime   time.Time
	LastStats     news.Stats
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

// RecordRun stores the outcome of a completed pipeline pass.
func (m *Metrics) RecordRun(runID string, st news.Stats, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Runs++
	m.ItemsCollected += int64(st.Raw)
	m.ItemsKept += int64(st.Kept)
	m.DuplicatesFound += int64(st.ExactDuplicates + st.NearDuplicates)

	m.LastRunID = runID
	m.LastRunTime = time.Now()
	m.LastStats = st
	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.Runs)
	m.IsHealthy = true
}

func (m *Metrics) IncrementDigestsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsSent++
}

func (m *Metrics) IncrementNoticesSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NoticesSent++
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedRuns++
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"runs":                    m.Runs,
		"failed_runs":             m.FailedRuns,
		"items_collected":         m.ItemsCollected,
		"items_kept":              m.ItemsKept,
		"duplicates_found":        m.DuplicatesFound,
		"digests_sent":            m.DigestsSent,
		"notices_sent":            m.NoticesSent,
		"last_run_id":             m.LastRunID,
		"last_run_stats":          m.LastStats,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
