package headlines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pevans/newsnow/newsapi"
	"github.com/rs/zerolog"
)

const (
	// PageSize is the number of articles requested per page.
	PageSize = 8
	// AutoRefreshInterval is the period of the auto-refresh trigger.
	AutoRefreshInterval = 60 * time.Second
	// SearchDebounce is the quiet window applied to search text input.
	SearchDebounce = 600 * time.Millisecond
)

var (
	ErrUnknownCountry  = errors.New("unknown country code")
	ErrUnknownCategory = errors.New("unknown category")
	ErrPageOutOfRange  = errors.New("page out of range")
)

// Fetcher performs a top-headlines request. *newsapi.Client implements it.
type Fetcher interface {
	TopHeadlines(ctx context.Context, req newsapi.Request) (*newsapi.Response, error)
}

// Renderer receives everything the controller wants displayed. Calls are
// serialized by the controller.
type Renderer interface {
	ShowLoading(placeholders int)
	ShowArticles(articles []newsapi.Article)
	ShowLoadFailed()
	ShowPagination(p Pagination)
	ShowNotice(n Notice)
	ShowLastUpdated(at time.Time, auto bool)
}

// QueryState is a snapshot of the filters and result position.
type QueryState struct {
	Country      string `json:"country"`
	Category     string `json:"category"`
	SearchText   string `json:"q"`
	Page         int    `json:"page"`
	TotalResults int    `json:"total_results"`
	AutoRefresh  bool   `json:"auto_refresh"`
}

// PageCount derives the number of pages from TotalResults.
func (s QueryState) PageCount() int {
	return PageCount(s.TotalResults, PageSize)
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	APIKey   string
	Endpoint string

	// Initial filter state
	Country    string
	Category   string
	SearchText string
	Page       int

	Clock  Clock
	Logger zerolog.Logger
}

// Controller owns the query state and turns user intent and timer events
// into fetches, and fetch outcomes into rendered state.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer
	clock    Clock
	logger   zerolog.Logger
	apiKey   string
	endpoint string

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	state       QueryState
	autoRefresh *recurring
	closed      bool
	inflight    sync.WaitGroup

	search *debouncer
}

// New creates a controller with the initial state described by opts. It does
// not fetch until Start or an operation asks for it.
func New(fetcher Fetcher, renderer Renderer, opts Options) (*Controller, error) {
	country := opts.Country
	if country == "" {
		country = newsapi.DefaultCountry
	}
	if !newsapi.IsCountry(country) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	if !newsapi.IsCategory(opts.Category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, opts.Category)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}

	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = newsapi.DefaultBaseURL + newsapi.TopHeadlinesPath
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		fetcher:  fetcher,
		renderer: renderer,
		clock:    clock,
		logger:   opts.Logger,
		apiKey:   opts.APIKey,
		endpoint: endpoint,
		ctx:      ctx,
		cancel:   cancel,
		state: QueryState{
			Country:    country,
			Category:   opts.Category,
			SearchText: strings.TrimSpace(opts.SearchText),
			Page:       page,
		},
	}
	c.search = newDebouncer(clock, SearchDebounce, c.applySearchText)

	return c, nil
}

// Start performs the initial fetch.
func (c *Controller) Start() {
	c.refetch(false)
}

// State returns a copy of the current query state.
func (c *Controller) State() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetCountry switches the country filter and returns to the first page.
func (c *Controller) SetCountry(code string) error {
	if !newsapi.IsCountry(code) {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Country = code
	c.state.Page = 1
	c.dispatchLocked(false)
	return nil
}

// SetCategory switches the category filter and returns to the first page.
// An empty value removes the filter.
func (c *Controller) SetCategory(value string) error {
	if !newsapi.IsCategory(value) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Category = value
	c.state.Page = 1
	c.dispatchLocked(false)
	return nil
}

// SetSearchText schedules a search text update. Calls arriving within
// SearchDebounce of each other collapse into one update with the last value.
func (c *Controller) SetSearchText(text string) {
	c.search.Push(text)
}

// SearchPending reports whether a debounced search update has not been
// applied yet.
func (c *Controller) SearchPending() bool {
	return c.search.Pending()
}

func (c *Controller) applySearchText(text string) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || text == c.state.SearchText {
		return
	}

	c.state.SearchText = text
	c.state.Page = 1
	c.dispatchLocked(false)
}

// GoToPage moves to page n. Pages outside [1, PageCount] are rejected without
// any state change or fetch.
func (c *Controller) GoToPage(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pages := c.state.PageCount()
	if n < 1 || n > pages {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, pages)
	}

	c.state.Page = n
	c.dispatchLocked(false)
	return nil
}

// ManualRefresh re-fetches the current page without changing any filter.
func (c *Controller) ManualRefresh() {
	c.refetch(false)
}

// SetAutoRefresh starts or stops the recurring refresh. Any existing trigger
// is released first, so repeated enables leave exactly one live trigger.
func (c *Controller) SetAutoRefresh(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.releaseAutoRefreshLocked()
	c.state.AutoRefresh = enabled
	if !enabled {
		return
	}

	var handle *recurring
	handle = startRecurring(c.clock, AutoRefreshInterval, func() {
		c.autoRefreshTick(handle)
	})
	c.autoRefresh = handle
}

func (c *Controller) releaseAutoRefreshLocked() {
	if c.autoRefresh != nil {
		c.autoRefresh.Stop()
		c.autoRefresh = nil
	}
}

func (c *Controller) autoRefreshTick(handle *recurring) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A tick racing a release must not fetch
	if c.autoRefresh != handle {
		return
	}
	c.dispatchLocked(true)
}

// BuildRequest describes the request for the current state.
func (c *Controller) BuildRequest() newsapi.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildRequestLocked()
}

func (c *Controller) buildRequestLocked() newsapi.Request {
	return newsapi.Request{
		Endpoint: c.endpoint,
		APIKey:   c.apiKey,
		PageSize: PageSize,
		Page:     c.state.Page,
		Country:  c.state.Country,
		Category: c.state.Category,
		Query:    c.state.SearchText,
	}
}

// ApplyFetchResult records a successful response and renders it.
func (c *Controller) ApplyFetchResult(resp *newsapi.Response) {
	c.applyResult(resp, false)
}

func (c *Controller) applyResult(resp *newsapi.Response, auto bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	articles := []newsapi.Article{}
	if resp != nil {
		total = max(resp.TotalResults, 0)
		if resp.Articles != nil {
			articles = resp.Articles
		}
	}

	c.state.TotalResults = total
	c.renderer.ShowArticles(articles)

	// The page that produced this response may now be out of range. It is
	// corrected for the next request only.
	pages := c.state.PageCount()
	if c.state.Page > pages {
		c.state.Page = 1
	}
	c.renderer.ShowPagination(NewPagination(c.state.Page, pages))
	c.renderer.ShowLastUpdated(c.clock.Now(), auto)

	if len(articles) == 0 {
		c.renderer.ShowNotice(EmptyResultNotice())
	}
}

// ApplyFetchFailure reports a failed fetch. Query state is left untouched.
func (c *Controller) ApplyFetchFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderer.ShowNotice(FailureNotice(err))
	c.renderer.ShowLoadFailed()
}

func (c *Controller) refetch(auto bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(auto)
}

// dispatchLocked starts a fetch for the current state. It must be called with
// c.mu held; the fetch itself runs without the lock.
func (c *Controller) dispatchLocked(auto bool) {
	if c.closed {
		return
	}

	if !newsapi.HasCredential(c.apiKey) {
		c.logger.Warn().Msg("API key missing, not fetching")
		c.renderer.ShowNotice(ConfigurationNotice())
		return
	}

	req := c.buildRequestLocked()
	c.renderer.ShowLoading(PageSize)

	requestID := uuid.New()
	c.logger.Debug().
		Str("request_id", requestID.String()).
		Str("country", req.Country).
		Str("category", req.Category).
		Str("q", req.Query).
		Int("page", req.Page).
		Bool("auto", auto).
		Msg("dispatching top-headlines request")

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		resp, err := c.fetcher.TopHeadlines(c.ctx, req)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("request_id", requestID.String()).
				Msg("top-headlines request failed")
			c.ApplyFetchFailure(err)
			return
		}

		c.logger.Debug().
			Str("request_id", requestID.String()).
			Int("total_results", resp.TotalResults).
			Int("articles", len(resp.Articles)).
			Msg("top-headlines request completed")
		c.applyResult(resp, auto)
	}()
}

// Wait blocks until every dispatched fetch has been applied.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close releases the debounce and auto-refresh timers and waits for in-flight
// fetches. No further fetches are dispatched.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.releaseAutoRefreshLocked()
	c.state.AutoRefresh = false
	c.mu.Unlock()

	c.search.Cancel()
	c.inflight.Wait()
	c.cancel()
}
