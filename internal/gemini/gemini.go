package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/deusflow/ligawatch/internal/news"
)

const (
	modelName    = "gemini-1.5-flash"
	maxHeadlines = 40
)

type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Brief asks the model for a short Spanish paragraph summarising the day's
// headlines. Callers treat an error as "no briefing".
func (c *Client) Brief(ctx context.Context, items []news.Item) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	model := c.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(items)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini")
	}

	text := responseText(resp.Candidates[0].Content.Parts)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

func buildPrompt(items []news.Item) string {
	var b strings.Builder
	b.WriteString(`Eres un analista de la industria del fútbol español.
Resume en un único párrafo (máximo 5 frases, en español) los temas principales de estos titulares
sobre LaLiga y Javier Tebas. No inventes datos que no aparezcan en los titulares. No uses listas.

TITULARES:
`)
	for i, it := range items {
		if i == maxHeadlines {
			break
		}
		b.WriteString(fmt.Sprintf("- [%s] %s\n", it.Category, it.Title))
	}
	return b.String()
}

func responseText(parts []genai.Part) string {
	var b strings.Builder
	for _, p := range parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
