package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"wheelhouse.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Build every eligible package into wheel files"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	List    ListCmd    `cmd:"" help:"List configured packages and their eligibility"`
	Clean   CleanCmd   `cmd:"" help:"Remove stale build state without building"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild automatically when package sources change"`
	History HistoryCmd `cmd:"" help:"Show recent packaging runs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
