package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats lint results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, dir string) error
}

// NewFormatter returns the formatter for a CLI format name. Unknown names
// fall back to text.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results grouped per post with a trailing summary.
func (f *TextFormatter) Format(w io.Writer, result *Result, dir string) error {
	if _, err := fmt.Fprintf(w, "Linting posts in: %s\n", dir); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("─", 60)); err != nil {
		return err
	}

	for _, issue := range result.Issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("─", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d posts scanned", result.PostsTotal); err != nil {
		return err
	}
	if warnings := result.WarningCount(); warnings > 0 {
		if _, err := fmt.Fprintf(w, ", %d warning%s", warnings, pluralize(warnings)); err != nil {
			return err
		}
	}
	if infos := result.InfoCount(); infos > 0 {
		if _, err := fmt.Fprintf(w, ", %d info", infos); err != nil {
			return err
		}
	}
	if len(result.Issues) == 0 {
		if _, err := fmt.Fprintf(w, ", no issues"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	location := issue.File
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.File, issue.Line)
	}
	_, err := fmt.Fprintf(w, "%s %s [%s] %s\n", issue.Severity, location, issue.Rule, issue.Message)
	return err
}

// JSONFormatter formats results as a single JSON document.
type JSONFormatter struct{}

// Format outputs the result as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result, _ string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
