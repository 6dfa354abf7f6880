// Package events publishes build completion events for downstream consumers.
package events

import (
	"context"
	"time"
)

// BuildCompleted is the event emitted after every build attempt.
type BuildCompleted struct {
	BuildID    string    `json:"build_id"`
	Time       time.Time `json:"time"`
	Posts      int       `json:"posts"`
	Output     string    `json:"output"`
	Outcome    string    `json:"outcome"`
	DurationMS int64     `json:"duration_ms"`
}

// Publisher delivers build events. Implementations must not fail the build:
// callers treat publish errors as warnings.
type Publisher interface {
	Publish(ctx context.Context, event BuildCompleted) error
	Close() error
}

// NoopPublisher is the default Publisher when events are not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BuildCompleted) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }
