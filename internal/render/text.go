package render

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockElements get a space appended so adjacent paragraphs do not run together.
const blockElements = "p, br, div, li, h1, h2, h3, h4, h5, h6"

// PlainText strips any HTML markup from a catalog description, decodes
// entities and collapses runs of whitespace.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapseSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find(blockElements).Each(func(_ int, sel *goquery.Selection) {
		sel.AfterNodes(&html.Node{Type: html.TextNode, Data: " "})
	})
	return collapseSpace(doc.Text())
}

// Truncate shortens s to at most max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max == 1 {
		return "…"
	}
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
