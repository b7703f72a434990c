// Package cli implements the gamedex command line front end. It is a thin
// shell over pkg/catalog: argument parsing, output formatting, and process
// wiring live here; every invariant lives in the catalog itself.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"log/slog"

	"github.com/jlrickert/cli-toolkit/toolkit"
)

// Version is stamped at build time.
var Version = "dev"

// Run executes the CLI with the given arguments and returns a process exit
// code. Interrupt and SIGTERM cancel the command context.
func Run(ctx context.Context, rt *toolkit.Runtime, args []string) (int, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd(&Deps{Runtime: rt})
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return 130, err
		}
		return 1, err
	}
	return 0, nil
}

// parseLevel maps a level name to a slog.Level, defaulting to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
