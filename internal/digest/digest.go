package digest

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/deusflow/ligawatch/internal/news"
)

const DefaultSubjectTemplate = "[LALIGA | Javier Tebas] Monitor diario - {date}"

type Options struct {
	SubjectTemplate string
	Location        *time.Location
	// Briefing is an optional summary paragraph shown above the sections.
	Briefing string
}

// Digest is one rendered daily report.
type Digest struct {
	Subject        string
	Text           string
	HTML           string
	JSON           []byte
	AttachmentName string
	Count          int
}

type attachment struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	WindowStart time.Time   `json:"window_start"`
	WindowEnd   time.Time   `json:"window_end"`
	Count       int         `json:"count"`
	Items       []news.Item `json:"items"`
}

// Compose renders the text, HTML and JSON forms of a run's items, grouped by
// category in the fixed category order.
func Compose(run news.Run, items []news.Item, opts Options) (*Digest, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	tpl := opts.SubjectTemplate
	if tpl == "" {
		tpl = DefaultSubjectTemplate
	}
	date := run.StartedAt.In(loc).Format("2006-01-02")

	if items == nil {
		items = []news.Item{}
	}
	payload, err := json.MarshalIndent(attachment{
		RunID:       run.ID,
		GeneratedAt: run.StartedAt.UTC(),
		WindowStart: run.Window.Start.UTC(),
		WindowEnd:   run.Window.End.UTC(),
		Count:       len(items),
		Items:       items,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode attachment: %w", err)
	}

	groups := news.GroupByCategory(items)
	return &Digest{
		Subject:        strings.ReplaceAll(tpl, "{date}", date),
		Text:           renderText(run, groups, len(items), loc, opts.Briefing),
		HTML:           renderHTML(run, groups, len(items), loc, opts.Briefing),
		JSON:           payload,
		AttachmentName: fmt.Sprintf("noticias_%s.json", date),
		Count:          len(items),
	}, nil
}

func windowLine(w news.Window, loc *time.Location) string {
	return fmt.Sprintf("Ventana: %s - %s (%s)",
		w.Start.In(loc).Format("2006-01-02 15:04"),
		w.End.In(loc).Format("2006-01-02 15:04"),
		loc.String())
}

func renderText(run news.Run, groups map[news.Category][]news.Item, total int, loc *time.Location, briefing string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Monitor diario LaLiga / Javier Tebas - %s\n", run.StartedAt.In(loc).Format("02/01/2006")))
	b.WriteString(windowLine(run.Window, loc) + "\n")
	b.WriteString(fmt.Sprintf("Total: %d noticias\n\n", total))

	if briefing != "" {
		b.WriteString("RESUMEN\n")
		b.WriteString(briefing + "\n\n")
	}

	if total == 0 {
		b.WriteString("No se han encontrado noticias en la ventana de hoy.\n")
		return b.String()
	}

	for _, cat := range news.Categories() {
		list := groups[cat]
		if len(list) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("== %s (%d) ==\n", cat, len(list)))
		for _, it := range list {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", it.PublishedAt.In(loc).Format("02/01 15:04"), it.Title))
			b.WriteString(fmt.Sprintf("  %s (%s)\n", it.URL, it.Source))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Ejecución %s\n", run.ID))
	return b.String()
}

func renderHTML(run news.Run, groups map[news.Category][]news.Item, total int, loc *time.Location, briefing string) string {
	var b strings.Builder

	b.WriteString("<html><body style=\"font-family:Arial,sans-serif\">\n")
	b.WriteString(fmt.Sprintf("<h2>Monitor diario LaLiga / Javier Tebas - %s</h2>\n", run.StartedAt.In(loc).Format("02/01/2006")))
	b.WriteString(fmt.Sprintf("<p>%s<br>Total: <b>%d</b> noticias</p>\n", html.EscapeString(windowLine(run.Window, loc)), total))

	if briefing != "" {
		b.WriteString(fmt.Sprintf("<h3>Resumen</h3>\n<p>%s</p>\n", html.EscapeString(briefing)))
	}

	if total == 0 {
		b.WriteString("<p><i>No se han encontrado noticias en la ventana de hoy.</i></p>\n")
	}

	for _, cat := range news.Categories() {
		list := groups[cat]
		if len(list) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("<h3>%s (%d)</h3>\n<ul>\n", html.EscapeString(string(cat)), len(list)))
		for _, it := range list {
			b.WriteString(fmt.Sprintf("<li>%s <a href=\"%s\">%s</a> <small>(%s)</small></li>\n",
				it.PublishedAt.In(loc).Format("02/01 15:04"),
				html.EscapeString(it.URL),
				html.EscapeString(it.Title),
				html.EscapeString(string(it.Source))))
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString(fmt.Sprintf("<p style=\"color:#888\"><small>Ejecución %s</small></p>\n", html.EscapeString(run.ID)))
	b.WriteString("</body></html>\n")
	return b.String()
}
