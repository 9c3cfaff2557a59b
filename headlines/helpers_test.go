package headlines

import (
	"context"
	"sync"
	"time"

	"github.com/pevans/newsnow/newsapi"
)

// fakeClock is a manually advanced Clock. Timer callbacks run synchronously
// inside Advance, in deadline order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock  *fakeClock
	when   time.Time
	f      func()
	active bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, when: c.now.Add(d), f: f, active: true}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	wasActive := t.active
	t.active = false
	return wasActive
}

// Advance moves time forward by d, firing every timer that comes due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if !t.active || t.when.After(target) {
				continue
			}
			if next == nil || t.when.Before(next.when) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.when
		next.active = false
		c.mu.Unlock()

		next.f()
	}
}

// Active returns the number of pending timers.
func (c *fakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, t := range c.timers {
		if t.active {
			count++
		}
	}
	return count
}

// stubFetcher records requests and answers them with a fixed outcome.
type stubFetcher struct {
	mu       sync.Mutex
	requests []newsapi.Request
	resp     *newsapi.Response
	err      error
}

func (f *stubFetcher) TopHeadlines(_ context.Context, req newsapi.Request) (*newsapi.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *stubFetcher) Requests() []newsapi.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]newsapi.Request(nil), f.requests...)
}

func (f *stubFetcher) SetResult(resp *newsapi.Response, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resp = resp
	f.err = err
}

// recordingRenderer keeps every render call for inspection.
type recordingRenderer struct {
	mu          sync.Mutex
	loading     int
	articles    [][]newsapi.Article
	loadFailed  int
	paginations []Pagination
	notices     []Notice
	updates     []bool
}

func (r *recordingRenderer) ShowLoading(int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading++
}

func (r *recordingRenderer) ShowArticles(articles []newsapi.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles = append(r.articles, articles)
}

func (r *recordingRenderer) ShowLoadFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadFailed++
}

func (r *recordingRenderer) ShowPagination(p Pagination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paginations = append(r.paginations, p)
}

func (r *recordingRenderer) ShowNotice(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingRenderer) ShowLastUpdated(_ time.Time, auto bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, auto)
}

func (r *recordingRenderer) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

func (r *recordingRenderer) NoticesWith(severity Severity) []Notice {
	var matched []Notice
	for _, n := range r.Notices() {
		if n.Severity == severity {
			matched = append(matched, n)
		}
	}
	return matched
}

func (r *recordingRenderer) LastPagination() Pagination {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paginations) == 0 {
		return Pagination{}
	}
	return r.paginations[len(r.paginations)-1]
}

func (r *recordingRenderer) Updates() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.updates...)
}

func sampleArticles(n int) []newsapi.Article {
	articles := make([]newsapi.Article, 0, n)
	for i := range n {
		articles = append(articles, newsapi.Article{
			Title:  "Headline",
			URL:    "https://example.com/" + string(rune('a'+i)),
			Source: newsapi.Source{Name: "Example"},
		})
	}
	return articles
}

func okResponse(total, count int) *newsapi.Response {
	return &newsapi.Response{
		Status:       "ok",
		TotalResults: total,
		Articles:     sampleArticles(count),
	}
}
