package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkarlsen/blogbuilder/internal/config"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Resolve(root.Config)
	if err != nil {
		return err
	}

	found, err := NewSource(cfg).Discover()
	if err != nil {
		return err
	}

	if d.Format == "json" {
		type entry struct {
			ID      string    `json:"id"`
			Path    string    `json:"path"`
			ModTime time.Time `json:"mod_time"`
		}
		entries := make([]entry, 0, len(found))
		for _, p := range found {
			entries = append(entries, entry{ID: p.ID, Path: p.Path, ModTime: p.ModTime})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Printf("Posts in %s, newest first:\n", cfg.Posts.Dir)
	for _, p := range found {
		fmt.Printf("  %s  %-20s %s\n", p.ModTime.Format("2006-01-02 15:04"), p.ID, p.Path)
	}
	fmt.Printf("%d posts\n", len(found))
	return nil
}
