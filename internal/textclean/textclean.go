// Package textclean turns headline strings that arrive with markup or HTML
// entities (common in feeds and in the GDELT/Bing payloads) into plain text.
package textclean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText strips tags, decodes entities and collapses whitespace.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
