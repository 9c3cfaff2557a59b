package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/pevans/newsnow/headlines"
	"github.com/pevans/newsnow/newsapi"
)

// LinkColor is used for article URLs.
const LinkColor = "#87CEEB"

// Terminal renders headlines as colored text. It implements
// headlines.Renderer.
type Terminal struct {
	out      io.Writer
	output   *termenv.Output
	color    bool
	location *time.Location

	mu sync.Mutex
}

// NewTerminal creates a terminal renderer writing to out. Colors are only
// emitted when color is true.
func NewTerminal(out io.Writer, color bool) *Terminal {
	return &Terminal{
		out:      out,
		output:   termenv.NewOutput(out),
		color:    color,
		location: time.Local,
	}
}

func (t *Terminal) style(s, color string) string {
	if !t.color {
		return s
	}
	return t.output.String(s).Foreground(t.output.Color(color)).String()
}

func (t *Terminal) bold(s string) string {
	if !t.color {
		return s
	}
	return t.output.String(s).Bold().String()
}

// ShowLoading prints a loading line.
func (t *Terminal) ShowLoading(placeholders int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.style(fmt.Sprintf("Loading %d headlines...", placeholders), "8"))
}

// ShowArticles prints one block per article.
func (t *Terminal) ShowArticles(articles []newsapi.Article) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(articles) == 0 {
		fmt.Fprintln(t.out, "No articles to show.")
		return
	}

	for i, a := range articles {
		fmt.Fprintf(t.out, "\n%2d. %s\n", i+1, t.bold(ArticleTitle(a)))
		if byline := Byline(a, t.location); byline != "" {
			fmt.Fprintf(t.out, "    %s\n", byline)
		}
		if desc := PlainText(a.Description); desc != "" {
			fmt.Fprintf(t.out, "    %s\n", truncate(desc, 200))
		}
		if a.URL != "" {
			fmt.Fprintf(t.out, "    %s\n", t.style(a.URL, LinkColor))
		}
	}
	fmt.Fprintln(t.out)
}

// ShowLoadFailed prints the could-not-load message.
func (t *Terminal) ShowLoadFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.style(LoadFailedMessage, "3"))
}

// ShowPagination prints the page position.
func (t *Terminal) ShowPagination(p headlines.Pagination) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pages := make([]string, 0, len(p.Pages))
	for _, n := range p.Pages {
		if n == p.Current {
			pages = append(pages, t.bold(fmt.Sprintf("[%d]", n)))
		} else {
			pages = append(pages, fmt.Sprintf("%d", n))
		}
	}
	fmt.Fprintf(t.out, "Page %d of %d  %s\n", p.Current, p.Total, strings.Join(pages, " "))
}

// ShowNotice prints the notice colored by severity.
func (t *Terminal) ShowNotice(n headlines.Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	color := "4"
	switch n.Severity {
	case headlines.SeverityWarning:
		color = "3"
	case headlines.SeverityDanger:
		color = "1"
	}
	fmt.Fprintln(t.out, t.style(n.Message, color))
}

// ShowLastUpdated prints the refresh time.
func (t *Terminal) ShowLastUpdated(at time.Time, auto bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := "Last updated: " + at.In(t.location).Format("15:04:05")
	if auto {
		line += " (auto)"
	}
	fmt.Fprintln(t.out, t.style(line, "8"))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
