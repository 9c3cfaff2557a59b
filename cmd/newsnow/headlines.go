package main

import (
	"errors"
	"fmt"

	"github.com/pevans/newsnow/newsapi"
	"github.com/pevans/newsnow/render"
)

// errFetchFailed is returned when a one-shot fetch could not be rendered.
var errFetchFailed = errors.New("failed to fetch headlines")

type HeadlinesCmd struct {
	FilterFlags `embed:""`

	Page int `short:"p" default:"1" help:"Page number (1-based)."`
}

func (c *HeadlinesCmd) Run(ctx *Context) error {
	if c.Page < 1 {
		return fmt.Errorf("invalid page %d: must be at least 1", c.Page)
	}

	renderer := &outcomeRenderer{Renderer: render.NewTerminal(ctx.Out, ctx.Color)}
	controller, err := newController(ctx, renderer, c.FilterFlags, c.Page)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}

	controller.Start()
	controller.Wait()
	controller.Close()

	if !ctx.Config.HasAPIKey() {
		return newsapi.ErrMissingAPIKey
	}
	if renderer.Failed() {
		return errFetchFailed
	}
	return nil
}
