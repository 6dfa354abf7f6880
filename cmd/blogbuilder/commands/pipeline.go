package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkarlsen/blogbuilder/internal/compiler"
)

// PipelineCmd implements the 'pipeline' command: print the compile rule
// chain in execution order.
type PipelineCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

func (p *PipelineCmd) Run(_ *Global, _ *CLI) error {
	rules := compiler.Rules()

	if p.Format == "json" {
		type entry struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
			Summary  string `json:"summary"`
		}
		entries := make([]entry, 0, len(rules))
		for i, rule := range rules {
			entries = append(entries, entry{Position: i + 1, Name: rule.Name, Summary: rule.Summary})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Println("Compile rule chain, in execution order:")
	for i, rule := range rules {
		fmt.Printf("  %d. %-20s %s\n", i+1, rule.Name, rule.Summary)
	}
	return nil
}
