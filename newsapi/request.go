package newsapi

import (
	"net/url"
	"strconv"
	"strings"
)

// TopHeadlinesPath is the endpoint every request targets.
const TopHeadlinesPath = "/top-headlines"

// PlaceholderAPIKey is the value shipped in sample configuration. It is
// treated exactly like a missing key.
const PlaceholderAPIKey = "YOUR_NEWSAPI_KEY_HERE"

// Request describes a single top-headlines request. It is built from the
// query state and carries everything needed to produce the URL.
type Request struct {
	Endpoint string
	APIKey   string
	PageSize int
	Page     int
	Country  string
	Category string
	Query    string
}

// HasCredential reports whether key is usable for a request.
func HasCredential(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

// Values returns the query parameters of the request. Page and page size are
// always present; country, category and q only when non-empty.
func (r Request) Values() url.Values {
	params := url.Values{}
	params.Set("apiKey", r.APIKey)
	params.Set("pageSize", strconv.Itoa(r.PageSize))
	params.Set("page", strconv.Itoa(r.Page))
	if r.Country != "" {
		params.Set("country", r.Country)
	}
	if r.Category != "" {
		params.Set("category", r.Category)
	}
	if r.Query != "" {
		params.Set("q", r.Query)
	}
	return params
}

// URL joins the endpoint and the encoded parameters.
func (r Request) URL() string {
	return r.Endpoint + "?" + r.Values().Encode()
}
