// Package build provides the canonical build pipeline for blogbuilder.
// All execution paths (CLI, preview, tests) route through Service.
package build

import "time"

// Status represents the outcome of a build execution.
type Status string

const (
	// StatusSuccess indicates the build completed and the page was written.
	StatusSuccess Status = "success"

	// StatusFailed indicates the build encountered a fatal error.
	StatusFailed Status = "failed"

	// StatusCancelled indicates the build was cancelled.
	StatusCancelled Status = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// Report contains the outcome of a build execution.
type Report struct {
	// BuildID uniquely identifies this run in logs, history, and events.
	BuildID string

	// Status indicates the overall build outcome.
	Status Status

	// Posts is the number of posts that went into the page.
	Posts int

	// Output describes where the page was written.
	Output string

	// Dangling lists table of contents targets that resolve to no anchor.
	// Only populated when verification runs.
	Dangling []string

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time

	// Duration is the total build execution time.
	Duration time.Duration
}
