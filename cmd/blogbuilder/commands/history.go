package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkarlsen/blogbuilder/internal/config"
	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit  int    `short:"n" default:"10" help:"Number of runs to show"`
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return bberrors.ValidationFailed("history.enabled",
			"build history is disabled; enable it in the configuration first")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return bberrors.HistoryUnavailable(err, cfg.History.Path)
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return bberrors.HistoryUnavailable(err, cfg.History.Path)
	}

	if h.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %-9s %3d posts  %6dms  %s  %s\n",
			rec.StartedAt.Format(time.RFC3339), rec.Outcome,
			rec.Posts, rec.DurationMS, rec.Output, rec.BuildID)
	}
	return nil
}
