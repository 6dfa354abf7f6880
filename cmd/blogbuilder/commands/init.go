package commands

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkarlsen/blogbuilder/internal/config"
)

// all: is required so the underscore-prefixed draft sample is embedded too.
//
//go:embed all:starter
var starterFS embed.FS

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir   string `short:"d" default:"." help:"Directory to initialize"`
	Force bool   `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Println("Initializing blogbuilder project")

	configPath := root.Config
	if configPath == "" {
		configPath = filepath.Join(i.Dir, config.DefaultPath)
	}
	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, i.Force); err != nil {
		return err
	}

	files := map[string]string{
		"starter/blog_template.html": filepath.Join(i.Dir, "blog_template.html"),
		"starter/welcome.md":         filepath.Join(i.Dir, "blogs", "welcome.md"),
		"starter/_draft.md":          filepath.Join(i.Dir, "blogs", "_draft.md"),
	}
	for src, dst := range files {
		if err := i.writeStarter(src, dst); err != nil {
			return err
		}
	}

	fmt.Println("Initialized; run 'blogbuilder build' to render the page")
	return nil
}

func (i *InitCmd) writeStarter(src, dst string) error {
	if _, err := os.Stat(dst); err == nil && !i.Force {
		fmt.Printf("Keeping existing %s\n", dst)
		return nil
	}

	data, err := starterFS.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read embedded starter file %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write starter file %s: %w", dst, err)
	}
	fmt.Printf("Wrote %s\n", dst)
	return nil
}
