// Package metrics provides observability hooks for blogbuilder builds.
//
// The package follows the Null Object pattern: components receive a Recorder
// through dependency injection and default to NoopRecorder, so call sites
// never nil-check. When the preview server runs with metrics enabled, a
// PrometheusRecorder backed by a private registry replaces the noop and
// HTTPHandler exposes the registry on /metrics.
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	svc := build.NewService(cfg, build.WithRecorder(recorder))
package metrics
