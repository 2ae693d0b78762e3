// Package config builds the immutable run configuration from flags and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// DefaultQuery is the keyword-OR expression sent to the search APIs.
const DefaultQuery = `"LaLiga" OR "La Liga" OR "Javier Tebas"`

type rawCfg struct {
	// Schedule and window
	Timezone    string `long:"tz" env:"TZ" default:"Europe/Madrid" description:"IANA timezone for the window and the schedule"`
	RunAt       string `long:"run-at" env:"RUN_AT" default:"08:00" description:"Daily run time (HH:MM) in daemon mode"`
	WindowHours int    `long:"window-hours" env:"WINDOW_HOURS" default:"24" description:"Hours before local midnight included in the window"`

	// Pipeline
	Query         string        `long:"query" env:"QUERY" description:"Keyword-OR expression for the search APIs"`
	Threshold     float64       `long:"near-dup-threshold" env:"NEAR_DUP_THRESHOLD" default:"0.88" description:"Cosine similarity at which titles are near duplicates"`
	FeedsFile     string        `long:"feeds-file" env:"FEEDS_FILE" default:"configs/feeds.yaml" description:"YAML file with the feed list"`
	HTTPTimeout   time.Duration `long:"http-timeout" env:"HTTP_TIMEOUT" default:"20s" description:"Timeout for each upstream request"`
	TolerateFails bool          `long:"tolerate-source-errors" env:"TOLERATE_SOURCE_ERRORS" description:"Skip a failing search API instead of aborting the run"`

	// Source credentials
	BingKey    string `long:"bing-key" env:"BING_NEWS_KEY" description:"Bing News Search key (source disabled when empty)"`
	NewsAPIKey string `long:"newsapi-key" env:"NEWSAPI_KEY" description:"NewsAPI key (source disabled when empty)"`
	NoGDELT    bool   `long:"no-gdelt" env:"DISABLE_GDELT" description:"Do not query GDELT"`

	// Email
	Recipients []string `long:"recipient" env:"RECIPIENTS" env-delim:"," description:"Digest recipients"`
	Sender     string   `long:"sender" env:"SENDER" default:"monitor@example.com" description:"From address"`
	SubjectTpl string   `long:"subject" env:"SUBJECT_TPL" default:"[LALIGA | Javier Tebas] Monitor diario - {date}" description:"Subject template, {date} is replaced"`
	SMTPHost   string   `long:"smtp-host" env:"SMTP_HOST" default:"smtp.gmail.com" description:"SMTP server"`
	SMTPPort   int      `long:"smtp-port" env:"SMTP_PORT" default:"465" description:"SMTP port"`
	SMTPSecure string   `long:"smtp-secure" env:"SMTP_SECURE" default:"ssl" description:"ssl or starttls"`
	SMTPUser   string   `long:"smtp-user" env:"SMTP_USER" description:"SMTP username"`
	SMTPPass   string   `long:"smtp-pass" env:"SMTP_PASS" description:"SMTP password"`

	// Optional extras
	GeminiAPIKey   string `long:"gemini-key" env:"GEMINI_API_KEY" description:"Adds a generated briefing to the digest"`
	TelegramToken  string `long:"telegram-token" env:"TELEGRAM_TOKEN" description:"Bot token for the run notice"`
	TelegramChatID string `long:"telegram-chat" env:"TELEGRAM_CHAT_ID" description:"Chat or channel for the run notice"`

	// Process
	DryRun         bool `long:"dry-run" env:"DRY_RUN" description:"Print the digest instead of sending it"`
	Daemon         bool `long:"daemon" env:"DAEMON" description:"Stay running and execute daily at RUN_AT"`
	MonitoringPort int  `long:"monitoring-port" env:"MONITORING_PORT" default:"8080" description:"Port for /health and /metrics in daemon mode"`
	Debug          bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

type Config struct {
	Timezone    string
	Location    *time.Location
	RunAt       string
	RunHour     int
	RunMinute   int
	WindowHours int

	Query          string
	Threshold      float64
	FeedsFile      string
	HTTPTimeout    time.Duration
	TolerateErrors bool

	BingKey     string
	NewsAPIKey  string
	EnableGDELT bool

	Recipients []string
	Sender     string
	SubjectTpl string
	SMTPHost   string
	SMTPPort   int
	SMTPSecure string
	SMTPUser   string
	SMTPPass   string

	GeminiAPIKey   string
	TelegramToken  string
	TelegramChatID string

	DryRun         bool
	Daemon         bool
	MonitoringPort int
	Debug          bool
}

// Load parses args and the environment. It returns nil, nil when help was
// requested.
func Load(args []string) (*Config, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Config{
		Timezone:       raw.Timezone,
		RunAt:          raw.RunAt,
		WindowHours:    raw.WindowHours,
		Query:          strings.TrimSpace(raw.Query),
		Threshold:      raw.Threshold,
		FeedsFile:      raw.FeedsFile,
		HTTPTimeout:    raw.HTTPTimeout,
		TolerateErrors: raw.TolerateFails,
		BingKey:        raw.BingKey,
		NewsAPIKey:     raw.NewsAPIKey,
		EnableGDELT:    !raw.NoGDELT,
		Recipients:     cleanList(raw.Recipients),
		Sender:         raw.Sender,
		SubjectTpl:     raw.SubjectTpl,
		SMTPHost:       raw.SMTPHost,
		SMTPPort:       raw.SMTPPort,
		SMTPSecure:     strings.ToLower(strings.TrimSpace(raw.SMTPSecure)),
		SMTPUser:       raw.SMTPUser,
		SMTPPass:       raw.SMTPPass,
		GeminiAPIKey:   raw.GeminiAPIKey,
		TelegramToken:  raw.TelegramToken,
		TelegramChatID: raw.TelegramChatID,
		DryRun:         raw.DryRun,
		Daemon:         raw.Daemon,
		MonitoringPort: raw.MonitoringPort,
		Debug:          raw.Debug,
	}
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}

	return cfg, cfg.Validate()
}

func cleanList(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Validate checks the values and fills the derived fields.
func (c *Config) Validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TZ %q is not a valid timezone: %w", c.Timezone, err)
	}
	c.Location = loc

	at, err := time.Parse("15:04", c.RunAt)
	if err != nil {
		return fmt.Errorf("RUN_AT must be HH:MM, got %q", c.RunAt)
	}
	c.RunHour, c.RunMinute = at.Hour(), at.Minute()

	if c.WindowHours <= 0 {
		return fmt.Errorf("WINDOW_HOURS must be positive")
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("NEAR_DUP_THRESHOLD must be in (0, 1]")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.SMTPSecure != "ssl" && c.SMTPSecure != "starttls" {
		return fmt.Errorf("SMTP_SECURE must be 'ssl' or 'starttls'")
	}

	if c.DryRun {
		return nil
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("RECIPIENTS is required")
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	return nil
}

// Window is the lookback before local midnight.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}

// TelegramEnabled reports whether the run notice is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}
