package main

import (
	"sync"

	"github.com/pevans/newsnow/headlines"
	"github.com/pevans/newsnow/newsapi"
)

// newController wires a NewsAPI client and renderer into a controller using
// the loaded configuration, with flags taking precedence over the configured
// defaults.
func newController(ctx *Context, renderer headlines.Renderer, flags FilterFlags, page int) (*headlines.Controller, error) {
	cfg := ctx.Config
	client := newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.TimeoutDuration(), ctx.Logger)

	country := flags.Country
	if country == "" {
		country = cfg.Defaults.Country
	}
	category := flags.Category
	if category == "" {
		category = cfg.Defaults.Category
	}

	return headlines.New(client, renderer, headlines.Options{
		APIKey:     cfg.NewsAPI.APIKey,
		Endpoint:   client.Endpoint(),
		Country:    country,
		Category:   category,
		SearchText: flags.Query,
		Page:       page,
		Logger:     ctx.Logger,
	})
}

// outcomeRenderer remembers whether any fetch failed so one-shot commands
// can report it through their exit status.
type outcomeRenderer struct {
	headlines.Renderer

	mu     sync.Mutex
	failed bool
}

func (r *outcomeRenderer) ShowLoadFailed() {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	r.Renderer.ShowLoadFailed()
}

func (r *outcomeRenderer) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}
