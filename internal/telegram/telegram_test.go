package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deusflow/ligawatch/internal/news"
)

func TestSendMessage(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New("TOKEN", "-100")
	c.BaseURL = srv.URL
	c.HTTP = srv.Client()

	if err := c.SendMessage(context.Background(), "<b>hola</b>"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if got["chat_id"] != "-100" || got["parse_mode"] != "HTML" || got["text"] != "<b>hola</b>" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestSendMessageStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("TOKEN", "-100")
	c.BaseURL = srv.URL
	if err := c.SendMessage(context.Background(), "x"); err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestEnabled(t *testing.T) {
	if New("", "chat").Enabled() || New("tok", "").Enabled() {
		t.Errorf("missing credentials should disable the client")
	}
	if !New("tok", "chat").Enabled() {
		t.Errorf("expected enabled client")
	}
}

func TestFormatNotice(t *testing.T) {
	var items []news.Item
	for i := 0; i < 7; i++ {
		items = append(items, news.Item{Title: fmt.Sprintf("Noticia %d", i), URL: "https://x/" + fmt.Sprint(i), Category: news.CategoryLaLiga})
	}
	items[0].Category = news.CategoryTebas
	items[0].Title = "Tebas & cía"

	out := FormatNotice("Monitor", items)
	if !strings.Contains(out, "Javier Tebas: <b>1</b>") || !strings.Contains(out, "LaLiga: <b>6</b>") {
		t.Errorf("missing counts:\n%s", out)
	}
	if !strings.Contains(out, "Tebas &amp; cía") {
		t.Errorf("title not escaped:\n%s", out)
	}
	if !strings.Contains(out, "y 2 más") || strings.Contains(out, "Noticia 6") {
		t.Errorf("headline list not truncated:\n%s", out)
	}

	if empty := FormatNotice("Monitor", nil); !strings.Contains(empty, "Sin noticias") {
		t.Errorf("empty notice = %q", empty)
	}
}
