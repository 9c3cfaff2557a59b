package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pevans/newsnow/render"
)

// errQuit ends a watch session.
var errQuit = errors.New("quit")

const watchHelp = `Commands:
  country <code>     switch country
  category [name]    switch category (empty for all)
  search [text]      search headlines (debounced)
  page <n>           go to page n
  refresh            fetch now
  auto on|off        toggle auto-refresh
  quit               exit`

type WatchCmd struct {
	FilterFlags `embed:""`

	NoAuto bool `name:"no-auto" help:"Start with auto-refresh disabled."`
}

// watchTarget is the part of the controller driven by watch commands.
type watchTarget interface {
	SetCountry(code string) error
	SetCategory(value string) error
	SetSearchText(text string)
	GoToPage(n int) error
	ManualRefresh()
	SetAutoRefresh(enabled bool)
}

func (c *WatchCmd) Run(ctx *Context) error {
	terminal := render.NewTerminal(ctx.Out, ctx.Color)
	controller, err := newController(ctx, terminal, c.FilterFlags, 1)
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	defer controller.Close()

	controller.Start()
	if !c.NoAuto {
		controller.SetAutoRefresh(true)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(ctx.Out, "Type 'help' for commands, 'quit' to exit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(ctx.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-sigCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-sigCtx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				// Input closed; keep following until interrupted.
				<-sigCtx.Done()
				return nil
			}
			if err := runWatchCommand(controller, ctx.Out, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Fprintf(ctx.Err, "Error: %v\n", err)
			}
		}
	}
}

// runWatchCommand applies one input line to the controller.
func runWatchCommand(target watchTarget, out io.Writer, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "country":
		if arg == "" {
			return errors.New("usage: country <code>")
		}
		return target.SetCountry(strings.ToLower(arg))
	case "category":
		return target.SetCategory(strings.ToLower(arg))
	case "search", "q":
		target.SetSearchText(arg)
		return nil
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid page %q", arg)
		}
		return target.GoToPage(n)
	case "refresh", "r":
		target.ManualRefresh()
		return nil
	case "auto":
		switch strings.ToLower(arg) {
		case "on":
			target.SetAutoRefresh(true)
		case "off":
			target.SetAutoRefresh(false)
		default:
			return errors.New("usage: auto on|off")
		}
		return nil
	case "help", "?":
		fmt.Fprintln(out, watchHelp)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (type 'help')", name)
	}
}
