package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# blogbuilder configuration
posts:
  dir: ./blogs          # folder of markdown posts; _ prefixed files are skipped
  order: mtime          # mtime | git (last commit time when inside a repository)
template:
  path: ./blog_template.html
output:
  path: ./blogs.html
preview:
  addr: ":8080"
  rebuild_interval: ""  # optional, e.g. "10m"; periodic rebuild on top of the watcher
  metrics: false        # expose Prometheus metrics on /metrics
history:
  enabled: false
  path: ./.blogbuilder/history.db
events:
  enabled: false
  url: nats://127.0.0.1:4222
  subject: blogbuilder.builds
`

// Init writes a commented example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
