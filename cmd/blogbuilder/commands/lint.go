package commands

import (
	"os"

	"github.com/mkarlsen/blogbuilder/internal/config"
	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format   string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Strict   bool   `help:"Exit non-zero on warnings, not just errors"`
	PostsDir string `name:"posts-dir" help:"Posts directory (overrides config)"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}
	if l.PostsDir != "" {
		cfg.Posts.Dir = l.PostsDir
	}

	found, err := NewSource(cfg).Discover()
	if err != nil {
		return err
	}

	result := lint.NewLinter().Lint(found)

	if err := lint.NewFormatter(l.Format).Format(os.Stdout, result, cfg.Posts.Dir); err != nil {
		return err
	}

	if result.HasErrors() || (l.Strict && result.HasWarnings()) {
		return bberrors.ValidationFailed("lint", "posts have lint issues")
	}
	return nil
}
