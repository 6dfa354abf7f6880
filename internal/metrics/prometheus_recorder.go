package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	buildDuration   prom.Histogram
	compileDuration prom.Histogram
	buildOutcome    *prom.CounterVec
	postsDiscovered prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "blogbuilder",
			Name:      "build_duration_seconds",
			Help:      "Total page build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.compileDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "blogbuilder",
			Name:      "compile_duration_seconds",
			Help:      "Duration of individual post compilations",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "builds_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.postsDiscovered = prom.NewGauge(prom.GaugeOpts{
			Namespace: "blogbuilder",
			Name:      "posts_discovered",
			Help:      "Posts found by the last discovery pass",
		})
		reg.MustRegister(pr.buildDuration, pr.compileDuration, pr.buildOutcome, pr.postsDiscovered)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveCompileDuration(d time.Duration) {
	if p == nil || p.compileDuration == nil {
		return
	}
	p.compileDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome OutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPostsDiscovered(n int) {
	if p == nil || p.postsDiscovered == nil {
		return
	}
	p.postsDiscovered.Set(float64(n))
}
