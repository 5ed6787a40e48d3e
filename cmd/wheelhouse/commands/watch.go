package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geniustechspace/wheelhouse/internal/cli"
	"github.com/geniustechspace/wheelhouse/internal/logfields"
	"github.com/geniustechspace/wheelhouse/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before a rebuild after the last change" default:"2s"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listRes := cli.NewCommandExecutor().ExecuteList(ctx, cli.ListRequest{ConfigPath: root.Config})
	listResp, err := listRes.ToTuple()
	if err != nil {
		return err
	}

	var dirs []string
	for _, c := range listResp.Candidates {
		if c.Eligible {
			dirs = append(dirs, c.Path)
		}
	}
	if len(dirs) == 0 {
		slog.Warn("No eligible packages to watch")
		return nil
	}

	rebuild := func(ctx context.Context) {
		res := cli.NewCommandExecutor().ExecuteBuild(ctx, cli.BuildRequest{
			ConfigPath: root.Config,
			Out:        os.Stdout,
		})
		if res.IsErr() {
			slog.Error("Rebuild failed", logfields.Error(res.UnwrapErr()))
		}
	}

	// Build once before watching so the dist dir reflects the current sources.
	rebuild(ctx)

	watcher, err := watch.NewSourceWatcher(dirs, w.Debounce, rebuild)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			slog.Warn("Failed to stop watcher", logfields.Error(err))
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down watch mode")
	return nil
}
