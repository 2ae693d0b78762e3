package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/deusflow/ligawatch/internal/logger"
)

// Schedule is the daily cron expression for the configured run time.
func (a *App) Schedule() string {
	return fmt.Sprintf("%d %d * * *", a.cfg.RunMinute, a.cfg.RunHour)
}

// Daemon runs the digest every day at RUN_AT in the configured timezone and
// serves the monitoring endpoints until ctx is cancelled.
func (a *App) Daemon(ctx context.Context) error {
	c := cron.New(cron.WithLocation(a.cfg.Location))

	schedule := a.Schedule()
	_, err := c.AddFunc(schedule, func() {
		logger.Info("cron: digest job triggered")
		if err := a.RunOnce(ctx); err != nil {
			logger.Error("cron: digest job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", schedule, err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.MonitoringPort),
		Handler:           NewRouter(a.metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting monitoring server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("monitoring server error", "error", err)
		}
	}()

	c.Start()
	logger.Info("daemon started", "schedule", schedule, "tz", a.cfg.Location.String())

	<-ctx.Done()
	logger.Info("shutting down")

	// Wait for an in-flight run to return.
	<-c.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("monitoring server shutdown: %w", err)
	}
	return nil
}
