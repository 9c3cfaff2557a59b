package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/pevans/newsnow/headlines"
	"github.com/pevans/newsnow/newsapi"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page is everything the HTML page needs.
type Page struct {
	Snapshot   Snapshot
	State      headlines.QueryState
	Countries  []newsapi.Country
	Categories []string
	Location   *time.Location
}

// NewPage assembles a page from the view and query state using the full
// country and category catalog.
func NewPage(snap Snapshot, state headlines.QueryState) Page {
	return Page{
		Snapshot:   snap,
		State:      state,
		Countries:  newsapi.Countries,
		Categories: newsapi.Categories,
	}
}

// WriteHTML renders the full page to w.
func WriteHTML(w io.Writer, page Page) error {
	loc := page.Location
	if loc == nil {
		loc = time.Local
	}

	funcs := template.FuncMap{
		"title":      ArticleTitle,
		"plain":      PlainText,
		"loadFailed": func() string { return LoadFailedMessage },
		"byline": func(a newsapi.Article) string {
			return Byline(a, loc)
		},
		"updated": func(t *time.Time) string {
			return t.In(loc).Format("2006-01-02 15:04:05")
		},
		"seq": func(n int) []int {
			return make([]int, max(n, 0))
		},
		"prev": func(n int) int { return n - 1 },
		"next": func(n int) int { return n + 1 },
	}

	tmpl, err := template.New("page.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse page template: %w", err)
	}

	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
