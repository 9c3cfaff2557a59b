package headlines

import (
	"errors"
	"testing"
	"time"

	"github.com/pevans/newsnow/newsapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "0123456789abcdef"

// Test helper: create a controller wired to fakes
func setupTestController(t *testing.T, opts Options) (*Controller, *stubFetcher, *recordingRenderer, *fakeClock) {
	fetcher := &stubFetcher{resp: okResponse(20, PageSize)}
	renderer := &recordingRenderer{}
	clock := newFakeClock()

	if opts.APIKey == "" {
		opts.APIKey = testAPIKey
	}
	opts.Clock = clock

	c, err := New(fetcher, renderer, opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c, fetcher, renderer, clock
}

func TestNew_Defaults(t *testing.T) {
	c, _, _, _ := setupTestController(t, Options{})

	state := c.State()
	assert.Equal(t, newsapi.DefaultCountry, state.Country)
	assert.Equal(t, "", state.Category)
	assert.Equal(t, "", state.SearchText)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 0, state.TotalResults)
	assert.False(t, state.AutoRefresh)
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(&stubFetcher{}, &recordingRenderer{}, Options{Country: "zz"})
	assert.ErrorIs(t, err, ErrUnknownCountry)

	_, err = New(&stubFetcher{}, &recordingRenderer{}, Options{Category: "gardening"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

// TestBuildRequest_Parameters verifies parameters are omitted exactly when
// their state value is empty
func TestBuildRequest_Parameters(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		present []string
		absent  []string
	}{
		{
			name:    "country only",
			opts:    Options{Country: "us"},
			present: []string{"pageSize", "page", "country"},
			absent:  []string{"category", "q"},
		},
		{
			name:    "country and category",
			opts:    Options{Country: "gb", Category: "sports"},
			present: []string{"pageSize", "page", "country", "category"},
			absent:  []string{"q"},
		},
		{
			name:    "all filters",
			opts:    Options{Country: "jp", Category: "science", SearchText: "  rocket  "},
			present: []string{"pageSize", "page", "country", "category", "q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _, _ := setupTestController(t, tt.opts)

			req := c.BuildRequest()
			assert.Equal(t, PageSize, req.PageSize)
			assert.Equal(t, 1, req.Page)
			assert.Equal(t, testAPIKey, req.APIKey)
			assert.Equal(t, newsapi.DefaultBaseURL+newsapi.TopHeadlinesPath, req.Endpoint)

			values := req.Values()
			for _, key := range tt.present {
				assert.True(t, values.Has(key), "%s should be present", key)
			}
			for _, key := range tt.absent {
				assert.False(t, values.Has(key), "%s should be absent", key)
			}
		})
	}
}

func TestBuildRequest_TrimsSearchText(t *testing.T) {
	c, _, _, _ := setupTestController(t, Options{SearchText: "  rocket  "})
	assert.Equal(t, "rocket", c.BuildRequest().Query)
}

// TestFilterChanges_ResetPage verifies every filter change returns to page 1
func TestFilterChanges_ResetPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(c *Controller, clock *fakeClock)
	}{
		{
			name: "country",
			change: func(c *Controller, _ *fakeClock) {
				require.NoError(t, c.SetCountry("de"))
			},
		},
		{
			name: "category",
			change: func(c *Controller, _ *fakeClock) {
				require.NoError(t, c.SetCategory("health"))
			},
		},
		{
			name: "category cleared",
			change: func(c *Controller, _ *fakeClock) {
				require.NoError(t, c.SetCategory(""))
			},
		},
		{
			name: "search text",
			change: func(c *Controller, clock *fakeClock) {
				c.SetSearchText("vaccine")
				clock.Advance(SearchDebounce)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fetcher, _, clock := setupTestController(t, Options{Category: "business"})
			fetcher.SetResult(okResponse(40, PageSize), nil)

			c.ApplyFetchResult(okResponse(40, PageSize))
			require.NoError(t, c.GoToPage(4))
			c.Wait()
			require.Equal(t, 4, c.State().Page)

			tt.change(c, clock)
			c.Wait()

			assert.Equal(t, 1, c.State().Page)
			requests := fetcher.Requests()
			require.Len(t, requests, 2)
			assert.Equal(t, 1, requests[1].Page, "refetch should request the first page")
		})
	}
}

func TestSetCountry_Unknown(t *testing.T) {
	c, fetcher, _, _ := setupTestController(t, Options{Country: "us"})

	err := c.SetCountry("xx")
	assert.ErrorIs(t, err, ErrUnknownCountry)
	assert.Equal(t, "us", c.State().Country)
	assert.Empty(t, fetcher.Requests())
}

func TestSetCategory_Unknown(t *testing.T) {
	c, fetcher, _, _ := setupTestController(t, Options{})

	err := c.SetCategory("gardening")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, "", c.State().Category)
	assert.Empty(t, fetcher.Requests())
}

// TestGoToPage_Range verifies page bounds derived from totalResults
func TestGoToPage_Range(t *testing.T) {
	c, fetcher, _, _ := setupTestController(t, Options{})

	// 20 results at 8 per page is 3 pages
	c.ApplyFetchResult(okResponse(20, PageSize))
	require.Equal(t, 3, c.State().PageCount())

	require.NoError(t, c.GoToPage(3))
	c.Wait()
	assert.Equal(t, 3, c.State().Page)
	require.Len(t, fetcher.Requests(), 1)
	assert.Equal(t, 3, fetcher.Requests()[0].Page)

	for _, n := range []int{4, 0, -1} {
		err := c.GoToPage(n)
		assert.ErrorIs(t, err, ErrPageOutOfRange, "page %d", n)
	}
	c.Wait()

	assert.Equal(t, 3, c.State().Page, "rejected pages must not change state")
	assert.Len(t, fetcher.Requests(), 1, "rejected pages must not fetch")
}

func TestGoToPage_BeforeFirstFetch(t *testing.T) {
	c, fetcher, _, _ := setupTestController(t, Options{})

	assert.ErrorIs(t, c.GoToPage(2), ErrPageOutOfRange)
	require.NoError(t, c.GoToPage(1))
	c.Wait()
	assert.Len(t, fetcher.Requests(), 1)
}

// TestSetSearchText_Debounce verifies rapid input collapses to one update
// carrying the last, trimmed value
func TestSetSearchText_Debounce(t *testing.T) {
	c, fetcher, _, clock := setupTestController(t, Options{})

	c.SetSearchText("g")
	clock.Advance(200 * time.Millisecond)
	c.SetSearchText("go")
	clock.Advance(200 * time.Millisecond)
	c.SetSearchText("  golang  ")
	clock.Advance(599 * time.Millisecond)

	assert.True(t, c.SearchPending())
	assert.Empty(t, fetcher.Requests(), "nothing is fetched inside the quiet window")
	assert.Equal(t, "", c.State().SearchText)

	clock.Advance(time.Millisecond)
	c.Wait()

	assert.False(t, c.SearchPending())
	requests := fetcher.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "golang", requests[0].Query)
	assert.Equal(t, "golang", c.State().SearchText)
	assert.Equal(t, 0, clock.Active())
}

func TestSetSearchText_UnchangedAfterTrim(t *testing.T) {
	c, fetcher, _, clock := setupTestController(t, Options{SearchText: "golang"})

	c.SetSearchText(" golang ")
	clock.Advance(SearchDebounce)
	c.Wait()

	assert.Empty(t, fetcher.Requests())
}

func TestSetSearchText_Cleared(t *testing.T) {
	c, fetcher, _, clock := setupTestController(t, Options{SearchText: "golang"})

	c.SetSearchText("   ")
	clock.Advance(SearchDebounce)
	c.Wait()

	assert.Equal(t, "", c.State().SearchText)
	requests := fetcher.Requests()
	require.Len(t, requests, 1)
	assert.False(t, requests[0].Values().Has("q"))
}

// TestSetAutoRefresh_SingleTrigger verifies repeated enables never leave more
// than one live trigger and disabling releases it
func TestSetAutoRefresh_SingleTrigger(t *testing.T) {
	c, fetcher, renderer, clock := setupTestController(t, Options{})

	c.SetAutoRefresh(true)
	c.SetAutoRefresh(true)
	assert.Equal(t, 1, clock.Active())
	assert.True(t, c.State().AutoRefresh)

	clock.Advance(AutoRefreshInterval)
	c.Wait()
	assert.Len(t, fetcher.Requests(), 1)

	clock.Advance(2 * AutoRefreshInterval)
	c.Wait()
	assert.Len(t, fetcher.Requests(), 3)
	assert.Equal(t, 1, clock.Active())

	for _, auto := range renderer.Updates() {
		assert.True(t, auto, "timer fetches are marked automatic")
	}

	c.SetAutoRefresh(false)
	assert.Equal(t, 0, clock.Active())
	assert.False(t, c.State().AutoRefresh)

	clock.Advance(5 * AutoRefreshInterval)
	c.Wait()
	assert.Len(t, fetcher.Requests(), 3, "no fetch after disabling")
}

func TestSetAutoRefresh_DisableWhenOff(t *testing.T) {
	c, _, _, clock := setupTestController(t, Options{})

	c.SetAutoRefresh(false)
	assert.Equal(t, 0, clock.Active())
	assert.False(t, c.State().AutoRefresh)
}

func TestManualRefresh_KeepsState(t *testing.T) {
	c, fetcher, renderer, _ := setupTestController(t, Options{Country: "fr", Category: "sports"})

	c.ApplyFetchResult(okResponse(20, PageSize))
	require.NoError(t, c.GoToPage(2))
	c.Wait()

	c.ManualRefresh()
	c.Wait()

	requests := fetcher.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, requests[0], requests[1])
	assert.Equal(t, 2, c.State().Page)
	assert.Equal(t, 2, renderer.loading)
}

// TestApplyFetchResult_Empty verifies empty results produce an informational
// notice and never an error notice
func TestApplyFetchResult_Empty(t *testing.T) {
	c, _, renderer, _ := setupTestController(t, Options{})

	c.ApplyFetchResult(&newsapi.Response{Status: "ok", TotalResults: 0, Articles: []newsapi.Article{}})

	info := renderer.NoticesWith(SeverityInfo)
	require.Len(t, info, 1)
	assert.Equal(t, "No articles found for the selected filters.", info[0].Message)
	assert.Equal(t, EmptyResultTimeout, info[0].Timeout)
	assert.Empty(t, renderer.NoticesWith(SeverityDanger))
	assert.Empty(t, renderer.NoticesWith(SeverityWarning))

	assert.Equal(t, 0, c.State().TotalResults)
	assert.Equal(t, Pagination{Current: 1, Total: 1, Pages: []int{1}}, renderer.LastPagination())
}

func TestApplyFetchResult_NonEmpty(t *testing.T) {
	c, _, renderer, _ := setupTestController(t, Options{})

	c.ApplyFetchResult(okResponse(20, PageSize))

	assert.Empty(t, renderer.Notices())
	assert.Equal(t, 20, c.State().TotalResults)
	require.Len(t, renderer.articles, 1)
	assert.Len(t, renderer.articles[0], PageSize)
	assert.Equal(t, 3, renderer.LastPagination().Total)
	assert.Equal(t, []bool{false}, renderer.Updates())
}

// TestApplyFetchResult_OutOfRangePage verifies the stale page is corrected
// after the fetch without an automatic retry
func TestApplyFetchResult_OutOfRangePage(t *testing.T) {
	c, fetcher, renderer, _ := setupTestController(t, Options{Page: 3})

	fetcher.SetResult(okResponse(8, 0), nil)
	c.ManualRefresh()
	c.Wait()

	requests := fetcher.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, 3, requests[0].Page, "the stale page is used for the request")
	assert.Equal(t, 1, c.State().Page, "page is reset after the response")
	assert.Equal(t, 1, renderer.LastPagination().Current)
	assert.Len(t, renderer.NoticesWith(SeverityInfo), 1)
}

func TestApplyFetchResult_Nil(t *testing.T) {
	c, _, renderer, _ := setupTestController(t, Options{})

	c.ApplyFetchResult(nil)
	assert.Equal(t, 0, c.State().TotalResults)
	assert.Len(t, renderer.NoticesWith(SeverityInfo), 1)
}

// TestApplyFetchFailure_PreservesState verifies failures never touch the
// result position
func TestApplyFetchFailure_PreservesState(t *testing.T) {
	c, _, renderer, _ := setupTestController(t, Options{Country: "ca"})

	c.ApplyFetchResult(okResponse(20, PageSize))
	require.NoError(t, c.GoToPage(2))
	c.Wait()
	before := c.State()

	c.ApplyFetchFailure(errors.New("connection reset"))

	assert.Equal(t, before, c.State())
	danger := renderer.NoticesWith(SeverityDanger)
	require.Len(t, danger, 1)
	assert.Equal(t, "Failed to fetch news: connection reset", danger[0].Message)
	assert.Equal(t, FailureTimeout, danger[0].Timeout)
	assert.Equal(t, 1, renderer.loadFailed)
}

func TestFetchFailure_FromFetcher(t *testing.T) {
	c, fetcher, renderer, _ := setupTestController(t, Options{})
	fetcher.SetResult(nil, &newsapi.StatusError{StatusCode: 500})

	c.Start()
	c.Wait()

	danger := renderer.NoticesWith(SeverityDanger)
	require.Len(t, danger, 1)
	assert.Equal(t, "Failed to fetch news: Network error: 500", danger[0].Message)
	assert.Equal(t, 0, c.State().TotalResults)
	assert.Equal(t, 1, c.State().Page)
}

// TestMissingCredential verifies no request leaves the controller without a
// usable key
func TestMissingCredential(t *testing.T) {
	for _, key := range []string{"  ", newsapi.PlaceholderAPIKey} {
		t.Run(key, func(t *testing.T) {
			c, fetcher, renderer, clock := setupTestController(t, Options{APIKey: key})

			c.Start()
			c.ManualRefresh()
			require.NoError(t, c.SetCountry("us"))
			c.SetAutoRefresh(true)
			clock.Advance(AutoRefreshInterval)
			c.Wait()

			assert.Empty(t, fetcher.Requests())
			notices := renderer.Notices()
			require.Len(t, notices, 4)
			for _, n := range notices {
				assert.Equal(t, SeverityWarning, n.Severity)
				assert.True(t, n.Persistent())
			}
			assert.Equal(t, 0, renderer.loading)
		})
	}
}

func TestClose_ReleasesTimers(t *testing.T) {
	c, fetcher, _, clock := setupTestController(t, Options{})

	c.SetAutoRefresh(true)
	c.SetSearchText("pending")
	require.Equal(t, 2, clock.Active())

	c.Close()
	assert.Equal(t, 0, clock.Active())
	assert.False(t, c.State().AutoRefresh)

	clock.Advance(10 * AutoRefreshInterval)
	c.ManualRefresh()
	c.Wait()
	assert.Empty(t, fetcher.Requests())
}
