package commands

import (
	"context"
	"fmt"

	"github.com/geniustechspace/wheelhouse/internal/cli"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	res := cli.NewCommandExecutor().ExecuteList(context.Background(), cli.ListRequest{
		ConfigPath: root.Config,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	for _, c := range resp.Candidates {
		state := "ok"
		if !c.Eligible {
			state = "no pyproject.toml"
		}
		fmt.Printf("%-16s %-20s %s\n", c.Name, state, c.Path)
	}
	return nil
}
