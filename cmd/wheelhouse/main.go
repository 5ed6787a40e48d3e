package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/geniustechspace/wheelhouse/cmd/wheelhouse/commands"
	"github.com/geniustechspace/wheelhouse/internal/version"
)

func main() {
	var root commands.CLI
	ctx := kong.Parse(&root,
		kong.Name("wheelhouse"),
		kong.Description("Package monorepo Python projects into wheel files for distribution"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("wheelhouse %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	err := ctx.Run(&commands.Global{}, &root)
	ctx.FatalIfErrorf(err)
}
