package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deusflow/ligawatch/internal/logger"
	"github.com/deusflow/ligawatch/internal/news"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	maxHeadlines   = 5
)

// Client posts a short run notice to a chat or channel.
type Client struct {
	Token   string
	ChatID  string
	BaseURL string
	HTTP    *http.Client
}

func New(token, chatID string) *Client {
	return &Client{
		Token:   token,
		ChatID:  chatID,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether both credentials are configured.
func (c *Client) Enabled() bool {
	return c != nil && c.Token != "" && c.ChatID != ""
}

// SendMessage sends one HTML message. There is no retry.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.BaseURL, c.Token)

	payload := map[string]interface{}{
		"chat_id":                  c.ChatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}

	logger.Info("notice sent to telegram", "chat_id", c.ChatID)
	return nil
}

// FormatNotice summarises a run: counts per category plus the first few
// headlines as links.
func FormatNotice(subject string, items []news.Item) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("⚽ <b>%s</b>\n", html.EscapeString(subject)))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━\n")

	if len(items) == 0 {
		b.WriteString("Sin noticias nuevas hoy.")
		return b.String()
	}

	groups := news.GroupByCategory(items)
	for _, cat := range news.Categories() {
		b.WriteString(fmt.Sprintf("• %s: <b>%d</b>\n", html.EscapeString(string(cat)), len(groups[cat])))
	}
	b.WriteString("\n")

	for i, it := range items {
		if i == maxHeadlines {
			b.WriteString(fmt.Sprintf("… y %d más en el correo", len(items)-maxHeadlines))
			break
		}
		b.WriteString(fmt.Sprintf("%d. <a href=\"%s\">%s</a>\n", i+1, html.EscapeString(it.URL), html.EscapeString(it.Title)))
	}

	return strings.TrimRight(b.String(), "\n")
}
