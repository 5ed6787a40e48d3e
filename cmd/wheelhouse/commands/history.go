package commands

import (
	"context"
	"fmt"

	"github.com/geniustechspace/wheelhouse/internal/cli"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of runs to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	res := cli.NewCommandExecutor().ExecuteHistory(context.Background(), cli.HistoryRequest{
		ConfigPath: root.Config,
		Limit:      h.Limit,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	if len(resp.Runs) == 0 {
		fmt.Println("No recorded runs")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %s\n", "RUN", "STARTED", "OUTCOME", "PACKAGES")
	for _, run := range resp.Runs {
		fmt.Printf("%-36s  %-20s  %-8s  %d ok, %d failed, %d skipped, %d wheels\n",
			run.ID,
			run.Started.Local().Format("2006-01-02 15:04:05"),
			run.Outcome,
			run.Succeeded, run.Failed, run.Skipped, run.Artifacts)
	}
	return nil
}
