package render

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newsnow/newsapi"
)

// PlainText reduces an HTML fragment to its visible text with whitespace
// collapsed. NewsAPI descriptions occasionally carry markup.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ArticleTitle returns the plain-text title, or "No title".
func ArticleTitle(a newsapi.Article) string {
	title := PlainText(a.Title)
	if title == "" {
		return "No title"
	}
	return title
}

// PublishedLabel formats the publication time for display, or returns an
// empty string when it is unknown.
func PublishedLabel(a newsapi.Article, loc *time.Location) string {
	if a.PublishedAt == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return a.PublishedAt.In(loc).Format("2006-01-02 15:04")
}

// Byline joins the source name and publication time.
func Byline(a newsapi.Article, loc *time.Location) string {
	parts := make([]string, 0, 2)
	if a.Source.Name != "" {
		parts = append(parts, a.Source.Name)
	}
	if published := PublishedLabel(a, loc); published != "" {
		parts = append(parts, published)
	}
	return strings.Join(parts, " · ")
}
