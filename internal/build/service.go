package build

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkarlsen/blogbuilder/internal/compiler"
	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/events"
	"github.com/mkarlsen/blogbuilder/internal/history"
	"github.com/mkarlsen/blogbuilder/internal/logfields"
	"github.com/mkarlsen/blogbuilder/internal/metrics"
	"github.com/mkarlsen/blogbuilder/internal/output"
	"github.com/mkarlsen/blogbuilder/internal/page"
	"github.com/mkarlsen/blogbuilder/internal/posts"
)

// Service orchestrates one build: discover posts, compile each one, assemble
// the page, render the template, and hand the result to the sink.
type Service struct {
	source       *posts.Source
	templatePath string
	sink         output.Sink
	verify       bool

	recorder  metrics.Recorder
	store     *history.Store
	publisher events.Publisher
}

// NewService creates a build service over the given collaborators. History,
// events, and metrics default to no-ops and are enabled via the With methods.
func NewService(source *posts.Source, templatePath string, sink output.Sink) *Service {
	return &Service{
		source:       source,
		templatePath: templatePath,
		sink:         sink,
		recorder:     metrics.NoopRecorder{},
		publisher:    events.NoopPublisher{},
	}
}

// WithRecorder injects a metrics recorder.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	s.recorder = r
	return s
}

// WithHistory injects a build history store. A nil store stays disabled.
func (s *Service) WithHistory(store *history.Store) *Service {
	s.store = store
	return s
}

// WithPublisher injects a build event publisher.
func (s *Service) WithPublisher(p events.Publisher) *Service {
	s.publisher = p
	return s
}

// WithVerification makes Run cross-check the rendered page and fail the
// build on dangling table of contents links.
func (s *Service) WithVerification() *Service {
	s.verify = true
	return s
}

// Run executes the complete build pipeline. The returned report is non-nil
// even on failure. A failure before the write stage leaves any previously
// written page untouched.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{
		BuildID:   uuid.NewString(),
		StartTime: start,
		Output:    s.sink.Location(),
	}

	slog.Info("Starting build",
		logfields.BuildID(report.BuildID),
		logfields.Path(s.source.Dir()),
		logfields.Output(report.Output))

	discovered, err := s.source.Discover()
	if err != nil {
		return s.fail(report, err)
	}
	report.Posts = len(discovered)
	s.recorder.SetPostsDiscovered(len(discovered))

	entries := make([]page.Entry, 0, len(discovered))
	for _, p := range discovered {
		select {
		case <-ctx.Done():
			return s.cancel(report, ctx.Err())
		default:
		}

		compileStart := time.Now()
		fragment := compiler.Compile(p.Raw)
		elapsed := time.Since(compileStart)
		s.recorder.ObserveCompileDuration(elapsed)

		slog.Debug("Compiled post",
			logfields.Post(p.ID),
			logfields.DurationMS(float64(elapsed.Nanoseconds())/1e6))

		entries = append(entries, page.Entry{ID: p.ID, HTML: fragment})
	}

	fragments := page.Assemble(entries)

	tpl, err := page.LoadTemplate(s.templatePath)
	if err != nil {
		return s.fail(report, err)
	}
	rendered := tpl.Render(fragments)

	if s.verify {
		verification, err := page.Verify(strings.NewReader(rendered))
		if err != nil {
			return s.fail(report, bberrors.BuildFailed("verify", err))
		}
		if !verification.OK() {
			report.Dangling = verification.Dangling
			return s.fail(report, bberrors.PageVerifyFailed(verification.Dangling))
		}
	}

	if err := s.sink.Write(rendered); err != nil {
		return s.fail(report, err)
	}

	report.Status = StatusSuccess
	s.finish(report)

	s.recordHistory(ctx, report)
	s.publishEvent(ctx, report)

	s.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	s.recorder.ObserveBuildDuration(report.Duration)

	slog.Info("Build finished",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.Posts),
		logfields.Output(report.Output),
		logfields.DurationMS(float64(report.Duration.Nanoseconds())/1e6))

	return report, nil
}

func (s *Service) fail(report *Report, err error) (*Report, error) {
	report.Status = StatusFailed
	s.finish(report)
	// The run context may already be cancelled; failed runs still get
	// recorded and announced.
	s.recordHistory(context.Background(), report)
	s.publishEvent(context.Background(), report)
	s.recorder.IncBuildOutcome(metrics.OutcomeFailed)
	return report, err
}

func (s *Service) cancel(report *Report, err error) (*Report, error) {
	report.Status = StatusCancelled
	s.finish(report)
	s.recorder.IncBuildOutcome(metrics.OutcomeFailed)
	return report, err
}

func (s *Service) finish(report *Report) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
}

// recordHistory appends the run to the history store. Failures degrade to a
// warning; history never fails a build.
func (s *Service) recordHistory(ctx context.Context, report *Report) {
	err := s.store.Append(ctx, history.Record{
		BuildID:    report.BuildID,
		StartedAt:  report.StartTime,
		DurationMS: report.Duration.Milliseconds(),
		Posts:      report.Posts,
		Output:     report.Output,
		Outcome:    string(report.Status),
	})
	if err != nil {
		slog.Warn("Failed to record build history",
			logfields.BuildID(report.BuildID),
			logfields.Error(err))
	}
}

// publishEvent emits the build completion event. Failures degrade to a
// warning; events never fail a build.
func (s *Service) publishEvent(ctx context.Context, report *Report) {
	err := s.publisher.Publish(ctx, events.BuildCompleted{
		BuildID:    report.BuildID,
		Time:       report.EndTime,
		Posts:      report.Posts,
		Output:     report.Output,
		Outcome:    string(report.Status),
		DurationMS: report.Duration.Milliseconds(),
	})
	if err != nil {
		slog.Warn("Failed to publish build event",
			logfields.BuildID(report.BuildID),
			logfields.Error(err))
	}
}
