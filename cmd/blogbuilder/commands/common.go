package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mkarlsen/blogbuilder/internal/build"
	"github.com/mkarlsen/blogbuilder/internal/config"
	"github.com/mkarlsen/blogbuilder/internal/events"
	"github.com/mkarlsen/blogbuilder/internal/gitinfo"
	"github.com/mkarlsen/blogbuilder/internal/history"
	"github.com/mkarlsen/blogbuilder/internal/logfields"
	"github.com/mkarlsen/blogbuilder/internal/output"
	"github.com/mkarlsen/blogbuilder/internal/posts"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (config.yaml is picked up when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the blog page from the posts directory"`
	Init     InitCmd     `cmd:"" help:"Initialize a config file, template, and sample posts"`
	Discover DiscoverCmd `cmd:"" help:"List posts in build order without building"`
	Preview  PreviewCmd  `cmd:"" help:"Serve the page locally and rebuild on changes"`
	Lint     LintCmd     `cmd:"" help:"Check posts for constructs the compiler handles badly"`
	History  HistoryCmd  `cmd:"" help:"Show recent build runs"`
	Pipeline PipelineCmd `cmd:"" help:"Print the compile rule chain in order"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// NewSource builds the post source for cfg, wiring the git commit time
// resolver in git order mode. A posts directory outside any repository
// degrades to mtime ordering with a warning.
func NewSource(cfg *config.Config) *posts.Source {
	var commitTimes posts.CommitTimes
	if cfg.Posts.Order == posts.OrderGit {
		resolver, err := gitinfo.NewResolver(cfg.Posts.Dir)
		if err != nil {
			slog.Warn("Git history unavailable, ordering by mtime", logfields.Error(err))
		} else {
			commitTimes = resolver
		}
	}
	return posts.NewSource(cfg.Posts.Dir, cfg.Posts.Order, commitTimes)
}

// NewBuildService assembles the build service with the configured optional
// collaborators. The returned cleanup closes the history store and the event
// publisher and must run after the last build.
func NewBuildService(cfg *config.Config, sink output.Sink) (*build.Service, func(), error) {
	svc := build.NewService(NewSource(cfg), cfg.Template.Path, sink)
	cleanup := func() {}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			// History is a convenience; a broken store should not stop
			// the page from building.
			slog.Warn("Build history unavailable",
				logfields.Path(cfg.History.Path),
				logfields.Error(err))
		} else {
			svc.WithHistory(store)
			cleanup = chain(cleanup, func() { _ = store.Close() })
		}
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewNATSPublisher(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			slog.Warn("Build events unavailable",
				logfields.URL(cfg.Events.URL),
				logfields.Error(err))
		} else {
			svc.WithPublisher(publisher)
			cleanup = chain(cleanup, func() { _ = publisher.Close() })
		}
	}

	return svc, cleanup, nil
}

func chain(first, second func()) func() {
	return func() {
		second()
		first()
	}
}
