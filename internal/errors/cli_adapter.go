package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if bbe, ok := err.(*BlogBuilderError); ok {
		return a.exitCodeFromCategory(bbe)
	}

	return 1
}

// exitCodeFromCategory maps BlogBuilderError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromCategory(err *BlogBuilderError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryPosts, CategoryTemplate:
		return 3 // Missing build inputs
	case CategoryBuild, CategoryFileSystem:
		return 11 // Build error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if bbe, ok := err.(*BlogBuilderError); ok {
		return a.formatBlogBuilder(bbe)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatBlogBuilder formats a BlogBuilderError for display. Path context is
// appended so a missing posts directory or template names the offending path.
func (a *CLIErrorAdapter) formatBlogBuilder(err *BlogBuilderError) string {
	if a.verbose {
		return err.Error()
	}

	msg := err.Message
	if path, ok := err.Context["path"].(string); ok && path != "" {
		msg = fmt.Sprintf("%s: %s", msg, path)
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation, CategoryPosts, CategoryTemplate:
		return msg
	default:
		return fmt.Sprintf("%s: %s", err.Category, msg)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if bbe, ok := err.(*BlogBuilderError); ok {
		return bbe.Category == CategoryInternal ||
			bbe.Category == CategoryRuntime
	}

	return false
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if bbe, ok := err.(*BlogBuilderError); ok {
		level := a.slogLevelFromSeverity(bbe.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(bbe.Category)),
		}

		a.logger.LogAttrs(nil, level, bbe.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts BlogBuilderError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityFatal, SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
