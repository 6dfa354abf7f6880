// Package config loads and validates the blogbuilder configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/posts"
)

// DefaultPath is where Resolve looks when no config path is given.
const DefaultPath = "config.yaml"

// Config is the root configuration.
type Config struct {
	Posts    PostsConfig    `yaml:"posts"`
	Template TemplateConfig `yaml:"template"`
	Output   OutputConfig   `yaml:"output"`
	Preview  PreviewConfig  `yaml:"preview"`
	History  HistoryConfig  `yaml:"history"`
	Events   EventsConfig   `yaml:"events"`
}

// PostsConfig locates the post sources and picks their ordering.
type PostsConfig struct {
	Dir   string          `yaml:"dir"`
	Order posts.OrderMode `yaml:"order"`
}

// TemplateConfig locates the page template.
type TemplateConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the rendered page.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// PreviewConfig configures the local preview server.
type PreviewConfig struct {
	Addr            string `yaml:"addr"`
	RebuildInterval string `yaml:"rebuild_interval"`
	Metrics         bool   `yaml:"metrics"`
}

// HistoryConfig configures the build history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// EventsConfig configures build event publishing.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Resolve loads the configuration for a run. An explicit path must exist.
// With an empty path the default file is loaded when present, and the
// built-in defaults are used otherwise, so a bare checkout builds without
// any configuration.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(DefaultPath)
}

// Load reads, expands, and validates the configuration file at path.
func Load(path string) (*Config, error) {
	// Pick up a .env file when present; the config file may reference
	// its variables via ${VAR} expansion.
	_ = godotenv.Load()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, bberrors.ConfigNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bberrors.ConfigInvalid(fmt.Errorf("read config file: %w", err), path)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, bberrors.ConfigInvalid(fmt.Errorf("unmarshal config: %w", err), path)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Posts.Dir == "" {
		cfg.Posts.Dir = "./blogs"
	}
	if cfg.Posts.Order == "" {
		cfg.Posts.Order = posts.OrderMtime
	}
	if cfg.Template.Path == "" {
		cfg.Template.Path = "./blog_template.html"
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "./blogs.html"
	}
	if cfg.Preview.Addr == "" {
		cfg.Preview.Addr = ":8080"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "./.blogbuilder/history.db"
	}
	if cfg.Events.URL == "" {
		cfg.Events.URL = "nats://127.0.0.1:4222"
	}
	if cfg.Events.Subject == "" {
		cfg.Events.Subject = "blogbuilder.builds"
	}
}

func validate(cfg *Config) error {
	if !posts.ValidOrderMode(string(cfg.Posts.Order)) {
		return bberrors.ValidationFailed("posts.order",
			fmt.Sprintf("unknown order %q (want mtime or git)", cfg.Posts.Order))
	}
	if cfg.Preview.RebuildInterval != "" {
		d, err := time.ParseDuration(cfg.Preview.RebuildInterval)
		if err != nil {
			return bberrors.ValidationFailed("preview.rebuild_interval",
				fmt.Sprintf("not a duration: %q", cfg.Preview.RebuildInterval))
		}
		if d <= 0 {
			return bberrors.ValidationFailed("preview.rebuild_interval", "must be positive")
		}
	}
	return nil
}

// RebuildIntervalDuration returns the parsed periodic rebuild interval, or
// zero when none is configured. Validation guarantees the value parses.
func (p PreviewConfig) RebuildIntervalDuration() time.Duration {
	if p.RebuildInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(p.RebuildInterval)
	if err != nil {
		return 0
	}
	return d
}
