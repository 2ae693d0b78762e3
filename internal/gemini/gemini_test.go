package gemini

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/deusflow/ligawatch/internal/news"
)

func TestBuildPromptCapsHeadlines(t *testing.T) {
	var items []news.Item
	for i := 0; i < maxHeadlines+5; i++ {
		items = append(items, news.Item{Title: fmt.Sprintf("Titular %d", i), Category: news.CategoryLaLiga})
	}
	p := buildPrompt(items)
	if !strings.Contains(p, "- [LaLiga] Titular 0") {
		t.Errorf("first headline missing:\n%s", p)
	}
	if strings.Contains(p, fmt.Sprintf("Titular %d\n", maxHeadlines)) {
		t.Errorf("prompt not capped at %d headlines", maxHeadlines)
	}
}

func TestResponseText(t *testing.T) {
	parts := []genai.Part{genai.Text("LaLiga  y Tebas\n"), genai.Blob{MIMEType: "image/png"}, genai.Text(" dominan el día.")}
	if got := responseText(parts); got != "LaLiga y Tebas dominan el día." {
		t.Errorf("responseText = %q", got)
	}
}
