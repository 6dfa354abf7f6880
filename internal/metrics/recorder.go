package metrics

import "time"

// OutcomeLabel enumerates final build outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for build metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe
// for nil receivers when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObserveCompileDuration(d time.Duration)
	IncBuildOutcome(outcome OutcomeLabel)
	SetPostsDiscovered(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)   {}
func (NoopRecorder) ObserveCompileDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)         {}
func (NoopRecorder) SetPostsDiscovered(int)               {}
