package helpers

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var brReplacer = strings.NewReplacer("<br />", "\n", "<br/>", "\n", "<br>", "\n")

// HTMLToText converts an HTML fragment to plain text: <br> tags become
// newlines, remaining markup is stripped, entities are unescaped.
func HTMLToText(fragment string) string {
	withBreaks := brReplacer.Replace(fragment)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	if err != nil {
		// Fall back to the raw fragment rather than dropping the body
		return strings.TrimSpace(html.UnescapeString(withBreaks))
	}

	return strings.TrimSpace(html.UnescapeString(doc.Text()))
}
