package render

import (
	"sync"
	"time"

	"github.com/pevans/newsnow/headlines"
	"github.com/pevans/newsnow/newsapi"
)

// LoadFailedMessage replaces the article area after a failed fetch.
const LoadFailedMessage = "Could not load articles. Check your API key and network."

// Snapshot is the rendered state at one instant.
type Snapshot struct {
	Loading      bool                  `json:"loading"`
	Placeholders int                   `json:"placeholders,omitempty"`
	Articles     []newsapi.Article     `json:"articles"`
	LoadFailed   bool                  `json:"load_failed"`
	Pagination   *headlines.Pagination `json:"pagination,omitempty"`
	Notice       *headlines.Notice     `json:"notice,omitempty"`
	LastUpdated  *time.Time            `json:"last_updated,omitempty"`
	AutoUpdated  bool                  `json:"auto_updated"`
}

// View keeps the latest rendered state for the web UI. It implements
// headlines.Renderer; transient notices disappear once their timeout has
// elapsed.
type View struct {
	clock headlines.Clock

	mu            sync.Mutex
	snap          Snapshot
	noticeShownAt time.Time
}

// NewView creates an empty view. A nil clock uses the system clock.
func NewView(clock headlines.Clock) *View {
	if clock == nil {
		clock = headlines.SystemClock{}
	}
	return &View{
		clock: clock,
		snap:  Snapshot{Articles: []newsapi.Article{}},
	}
}

// ShowLoading replaces the article area with placeholders and clears the
// pagination control.
func (v *View) ShowLoading(placeholders int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Loading = true
	v.snap.Placeholders = placeholders
	v.snap.LoadFailed = false
	v.snap.Articles = []newsapi.Article{}
	v.snap.Pagination = nil
}

// ShowArticles displays the fetched articles.
func (v *View) ShowArticles(articles []newsapi.Article) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Loading = false
	v.snap.Placeholders = 0
	v.snap.LoadFailed = false
	v.snap.Articles = append([]newsapi.Article{}, articles...)
}

// ShowLoadFailed displays the could-not-load placeholder.
func (v *View) ShowLoadFailed() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Loading = false
	v.snap.Placeholders = 0
	v.snap.LoadFailed = true
	v.snap.Articles = []newsapi.Article{}
}

// ShowPagination displays the pagination control.
func (v *View) ShowPagination(p headlines.Pagination) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snap.Pagination = &p
}

// ShowNotice replaces the current notice.
func (v *View) ShowNotice(n headlines.Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.Notice = &n
	v.noticeShownAt = v.clock.Now()
}

// ShowLastUpdated records when the articles were last refreshed.
func (v *View) ShowLastUpdated(at time.Time, auto bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snap.LastUpdated = &at
	v.snap.AutoUpdated = auto
}

// Snapshot returns a copy of the current state with expired notices
// dismissed.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n := v.snap.Notice; n != nil && !n.Persistent() {
		if !v.clock.Now().Before(v.noticeShownAt.Add(n.Timeout)) {
			v.snap.Notice = nil
		}
	}

	snap := v.snap
	snap.Articles = append([]newsapi.Article{}, v.snap.Articles...)
	return snap
}
