package commands

import (
	"context"
	"fmt"

	"github.com/geniustechspace/wheelhouse/internal/cli"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	res := cli.NewCommandExecutor().ExecuteClean(context.Background(), cli.CleanRequest{
		ConfigPath: root.Config,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	if len(resp.Cleaned) == 0 {
		fmt.Println("Nothing to clean")
		return nil
	}
	for _, name := range resp.Cleaned {
		fmt.Printf("Cleaned %s\n", name)
	}
	return nil
}
