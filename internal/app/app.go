package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/deusflow/ligawatch/internal/config"
	"github.com/deusflow/ligawatch/internal/digest"
	"github.com/deusflow/ligawatch/internal/gemini"
	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/mailer"
	"github.com/deusflow/ligawatch/internal/metrics"
	"github.com/deusflow/ligawatch/internal/news"
	"github.com/deusflow/ligawatch/internal/rss"
	"github.com/deusflow/ligawatch/internal/search"
	"github.com/deusflow/ligawatch/internal/telegram"
)

// Briefer writes an optional summary paragraph for the digest.
type Briefer interface {
	Brief(ctx context.Context, items []news.Item) (string, error)
}

// Notifier posts a short notice after the digest went out.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// DigestSender delivers the composed digest.
type DigestSender interface {
	Send(d *digest.Digest) error
}

type App struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	sources  []news.Source
	sender   DigestSender
	notifier Notifier
	briefer  Briefer
	closers  []func()
	out      io.Writer
	now      func() time.Time
	newID    func() string
}

// New wires the sources and transports described by cfg.
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*App, error) {
	sources, err := buildSources(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		metrics: m,
		sources: sources,
		sender: mailer.New(mailer.Config{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Secure:     cfg.SMTPSecure,
			Username:   cfg.SMTPUser,
			Password:   cfg.SMTPPass,
			From:       cfg.Sender,
			Recipients: cfg.Recipients,
		}),
		out:   os.Stdout,
		now:   time.Now,
		newID: uuid.NewString,
	}

	if cfg.TelegramEnabled() {
		a.notifier = telegram.New(cfg.TelegramToken, cfg.TelegramChatID)
	}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("gemini disabled", "error", err)
		} else {
			a.briefer = client
			a.closers = append(a.closers, client.Close)
		}
	}

	return a, nil
}

func buildSources(cfg *config.Config) ([]news.Source, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	feeds, err := rss.LoadFeeds(cfg.FeedsFile)
	if err != nil {
		return nil, fmt.Errorf("load feeds %s: %w", cfg.FeedsFile, err)
	}

	opts := search.Options{Client: client, Location: cfg.Location}
	sources := []news.Source{
		rss.New(feeds, client, cfg.Location),
		search.NewBing(cfg.BingKey, opts),
		search.NewNewsAPI(cfg.NewsAPIKey, opts),
	}
	if cfg.EnableGDELT {
		sources = append(sources, search.NewGDELT(opts))
	}
	return sources, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

// RunOnce executes one full pass: collect, process, compose, deliver.
// Source failures (unless tolerated) and delivery failures abort the run
// before anything is sent.
func (a *App) RunOnce(ctx context.Context) error {
	start := a.now()
	run := news.Run{
		ID:        a.newID(),
		StartedAt: start,
		Window:    news.NewWindow(start, a.cfg.Location, a.cfg.Window()),
	}
	logger.Info("run started",
		"run_id", run.ID,
		"window_start", run.Window.Start.Format(time.RFC3339),
		"window_end", run.Window.End.Format(time.RFC3339),
		"sources", len(a.sources))

	raw, _, err := news.Collect(ctx, a.sources, a.cfg.Query, a.cfg.TolerateErrors)
	if err != nil {
		return a.fail(run, fmt.Errorf("collect: %w", err))
	}

	res := news.Pipeline{Window: run.Window, Threshold: a.cfg.Threshold}.Process(raw)

	briefing := ""
	if a.briefer != nil && len(res.Items) > 0 {
		b, err := a.briefer.Brief(ctx, res.Items)
		if err != nil {
			logger.Warn("briefing failed, sending without it", "run_id", run.ID, "error", err)
		} else {
			briefing = b
		}
	}

	d, err := digest.Compose(run, res.Items, digest.Options{
		SubjectTemplate: a.cfg.SubjectTpl,
		Location:        a.cfg.Location,
		Briefing:        briefing,
	})
	if err != nil {
		return a.fail(run, fmt.Errorf("compose: %w", err))
	}

	if a.cfg.DryRun {
		fmt.Fprintf(a.out, "Subject: %s\n\n%s", d.Subject, d.Text)
		logger.Info("dry run, digest not sent", "run_id", run.ID, "items", d.Count)
	} else {
		if err := a.sender.Send(d); err != nil {
			return a.fail(run, fmt.Errorf("deliver: %w", err))
		}
		a.metrics.IncrementDigestsSent()
		logger.Info("digest sent", "run_id", run.ID, "items", d.Count, "recipients", len(a.cfg.Recipients))

		if a.notifier != nil {
			if err := a.notifier.SendMessage(ctx, telegram.FormatNotice(d.Subject, res.Items)); err != nil {
				logger.Warn("telegram notice failed", "run_id", run.ID, "error", err)
			} else {
				a.metrics.IncrementNoticesSent()
			}
		}
	}

	duration := a.now().Sub(start)
	a.metrics.RecordRun(run.ID, res.Stats, duration)
	logger.Info("run finished", "run_id", run.ID, "kept", res.Stats.Kept, "duration", duration)
	return nil
}

func (a *App) fail(run news.Run, err error) error {
	a.metrics.SetError(err.Error())
	logger.Error("run failed", "run_id", run.ID, "error", err)
	return err
}
