package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mkarlsen/blogbuilder/internal/config"
	"github.com/mkarlsen/blogbuilder/internal/metrics"
	"github.com/mkarlsen/blogbuilder/internal/output"
	"github.com/mkarlsen/blogbuilder/internal/preview"
)

// PreviewCmd implements the 'preview' command: serve the page locally and
// rebuild whenever a post or the template changes.
type PreviewCmd struct {
	Addr     string `short:"a" help:"Listen address (overrides config)"`
	PostsDir string `name:"posts-dir" help:"Posts directory (overrides config)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}
	if p.Addr != "" {
		cfg.Preview.Addr = p.Addr
	}
	if p.PostsDir != "" {
		cfg.Posts.Dir = p.PostsDir
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sink := output.NewMemorySink()
	svc, cleanup, err := NewBuildService(cfg, sink)
	if err != nil {
		return err
	}
	defer cleanup()

	server := preview.NewServer(svc, sink, cfg.Preview.Addr,
		cfg.Posts.Dir, filepath.Dir(cfg.Template.Path))
	server.WithRebuildInterval(cfg.Preview.RebuildIntervalDuration())

	if cfg.Preview.Metrics {
		registry := prometheus.NewRegistry()
		svc.WithRecorder(metrics.NewPrometheusRecorder(registry))
		server.WithMetricsHandler(metrics.HTTPHandler(registry))
	}

	return server.Run(ctx)
}
