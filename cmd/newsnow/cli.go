package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/pevans/newsnow/config"
	"github.com/rs/zerolog"
)

// CLI is the kong command tree.
type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Serve     ServeCmd     `cmd:"" help:"Serve the headlines page."`
	Headlines HeadlinesCmd `cmd:"" help:"Print one page of headlines."`
	Watch     WatchCmd     `cmd:"" help:"Follow headlines in the terminal with auto-refresh."`
	Countries CountriesCmd `cmd:"" help:"List supported countries and categories."`
	Version   VersionCmd   `cmd:"" help:"Print version."`
}

// Context is passed to every command's Run method.
type Context struct {
	Out     io.Writer
	Err     io.Writer
	In      io.Reader
	Config  config.Config
	Logger  zerolog.Logger
	Color   bool
	Version string
}

// FilterFlags are the initial filter values shared by the terminal commands.
// Empty values fall back to the configured defaults.
type FilterFlags struct {
	Country  string `short:"c" help:"Country code (see 'newsnow countries')."`
	Category string `short:"k" help:"Category filter."`
	Query    string `short:"q" help:"Free-text search."`
}
