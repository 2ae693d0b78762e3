package metrics

import (
	"testing"
	"time"

	"github.com/deusflow/ligawatch/internal/news"
)

func TestRecordRunAndError(t *testing.T) {
	m := New()
	m.RecordRun("run-1", news.Stats{Raw: 10, ExactDuplicates: 2, NearDuplicates: 1, Kept: 5}, 2*time.Second)
	m.RecordRun("run-2", news.Stats{Raw: 4, Kept: 4}, 4*time.Second)
	m.IncrementDigestsSent()

	stats := m.GetStats()
	if stats["runs"].(int64) != 2 {
		t.Errorf("runs = %v", stats["runs"])
	}
	if stats["items_collected"].(int64) != 14 || stats["items_kept"].(int64) != 9 {
		t.Errorf("unexpected item counters: %v", stats)
	}
	if stats["duplicates_found"].(int64) != 3 {
		t.Errorf("duplicates_found = %v", stats["duplicates_found"])
	}
	if stats["average_run_duration_ms"].(int64) != 3000 {
		t.Errorf("average = %v", stats["average_run_duration_ms"])
	}
	if stats["last_run_id"].(string) != "run-2" {
		t.Errorf("last_run_id = %v", stats["last_run_id"])
	}
	if !m.Healthy() {
		t.Errorf("expected healthy after successful runs")
	}

	m.SetError("smtp: auth failed")
	if m.Healthy() {
		t.Errorf("expected unhealthy after error")
	}
	if got := m.GetStats()["failed_runs"].(int64); got != 1 {
		t.Errorf("failed_runs = %d", got)
	}
}
