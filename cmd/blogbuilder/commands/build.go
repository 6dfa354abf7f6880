package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkarlsen/blogbuilder/internal/config"
	"github.com/mkarlsen/blogbuilder/internal/output"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output   string `short:"o" help:"Output file for the rendered page (overrides config)"`
	PostsDir string `name:"posts-dir" help:"Posts directory (overrides config)"`
	Template string `short:"t" help:"Template file (overrides config)"`
	Verify   bool   `help:"Cross-check table of contents links after rendering"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}
	b.applyOverrides(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, cleanup, err := NewBuildService(cfg, output.NewFileSink(cfg.Output.Path))
	if err != nil {
		return err
	}
	defer cleanup()

	if b.Verify {
		svc.WithVerification()
	}

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s with %d posts in %s\n",
		report.Output, report.Posts, report.Duration.Round(time.Millisecond))
	return nil
}

func (b *BuildCmd) applyOverrides(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output.Path = b.Output
	}
	if b.PostsDir != "" {
		cfg.Posts.Dir = b.PostsDir
	}
	if b.Template != "" {
		cfg.Template.Path = b.Template
	}
}
