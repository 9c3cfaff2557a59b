package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pevans/newsnow/render"
	"github.com/pevans/newsnow/web"
)

type ServeCmd struct {
	FilterFlags `embed:""`

	Addr   string `help:"Listen address (overrides server.addr from config)."`
	NoAuto bool   `name:"no-auto" help:"Start with auto-refresh disabled."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	view := render.NewView(nil)
	controller, err := newController(ctx, view, c.FilterFlags, 1)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	defer controller.Close()

	controller.Start()
	if !c.NoAuto {
		controller.SetAutoRefresh(true)
	}

	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(controller, view, ctx.Config, ctx.Logger)
	fmt.Fprintf(ctx.Out, "Serving headlines on http://%s\n", addr)
	return server.Run(sigCtx, addr)
}
