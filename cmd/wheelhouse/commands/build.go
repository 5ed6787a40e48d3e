package commands

import (
	"context"
	"os"

	"github.com/geniustechspace/wheelhouse/internal/cli"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	return RunBuild(context.Background(), root.Config)
}

func RunBuild(ctx context.Context, configPath string) error {
	res := cli.NewCommandExecutor().ExecuteBuild(ctx, cli.BuildRequest{
		ConfigPath: configPath,
		Out:        os.Stdout,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}
	if code := resp.Result.ExitCode(); code != 0 {
		// The summary already names the failing packages; the process just
		// has to exit non-zero so CI pipelines stop here.
		os.Exit(code)
	}
	return nil
}
