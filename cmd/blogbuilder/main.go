package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/mkarlsen/blogbuilder/cmd/blogbuilder/commands"
	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("Build a single-page blog from a folder of markdown posts."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	bberrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
