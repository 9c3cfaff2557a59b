package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/muesli/termenv"
	"github.com/pevans/newsnow/config"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	cli := &CLI{}

	parser, err := kong.New(cli,
		kong.Name("newsnow"),
		kong.Description("Top headlines from NewsAPI, in the browser or the terminal."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": buildVersion()},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyEnvDefaults(cli)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	runCtx := &Context{
		Out:     os.Stdout,
		Err:     os.Stderr,
		In:      os.Stdin,
		Config:  cfg,
		Logger:  logger,
		Color:   colorEnabled(cli.Color),
		Version: buildVersion(),
	}

	if err := kctx.Run(runCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildVersion() string {
	if commit == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

// applyEnvDefaults lets NEWSNOW_VERBOSE and NEWSNOW_COLOR stand in for flags
// left at their defaults.
func applyEnvDefaults(cli *CLI) {
	if envBool("NEWSNOW_VERBOSE") {
		cli.Verbose = true
	}
	if value := os.Getenv("NEWSNOW_COLOR"); value != "" && cli.Color == "auto" {
		cli.Color = value
	}
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// colorEnabled resolves the --color mode against NO_COLOR and the terminal.
func colorEnabled(mode string) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	default:
		return termenv.NewOutput(os.Stdout).ColorProfile() != termenv.Ascii
	}
}
