// Package preview rebuilds the page on source changes and serves it locally.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/mkarlsen/blogbuilder/internal/build"
	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/logfields"
	"github.com/mkarlsen/blogbuilder/internal/output"
)

const debounceDelay = 300 * time.Millisecond

// Builder runs one build. *build.Service satisfies it.
type Builder interface {
	Run(ctx context.Context) (*build.Report, error)
}

// buildStatus tracks the current build state for serving and health checks.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastBuild    time.Time
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.lastBuild = time.Now()
	bs.hasGoodBuild = true
}

func (bs *buildStatus) snapshot() (lastErr error, lastBuild time.Time, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.lastBuild, bs.hasGoodBuild
}

// Server watches the post sources, rebuilds into a memory sink, and serves
// the latest good page over HTTP.
type Server struct {
	builder   Builder
	sink      *output.MemorySink
	addr      string
	watchDirs []string
	interval  time.Duration
	metricsH  http.Handler
	status    buildStatus
}

// NewServer creates a preview server. watchDirs are the directories whose
// changes trigger a rebuild (the posts directory and the template directory).
func NewServer(builder Builder, sink *output.MemorySink, addr string, watchDirs ...string) *Server {
	return &Server{
		builder:   builder,
		sink:      sink,
		addr:      addr,
		watchDirs: watchDirs,
	}
}

// WithRebuildInterval adds a periodic rebuild on top of the file watcher.
// Zero disables it.
func (s *Server) WithRebuildInterval(d time.Duration) *Server {
	s.interval = d
	return s
}

// WithMetricsHandler mounts h on /metrics.
func (s *Server) WithMetricsHandler(h http.Handler) *Server {
	s.metricsH = h
	return s
}

// Run builds once, then serves and rebuilds until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx)

	watcher, err := s.setupWatcher()
	if err != nil {
		return bberrors.PreviewFailed(err)
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := setupDebouncer()
	s.startWorker(ctx, rebuildReq)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return bberrors.PreviewFailed(err)
	}

	srv := &http.Server{Handler: s.handler(), ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	slog.Info("Preview server listening",
		logfields.Addr(ln.Addr().String()),
		logfields.URL("http://"+ln.Addr().String()))

	if s.interval > 0 {
		stop := s.startPeriodicRebuild(trigger)
		defer stop()
	}

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(srv)
		case err := <-serveErr:
			return bberrors.PreviewFailed(err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (s *Server) rebuild(ctx context.Context) {
	report, err := s.builder.Run(ctx)
	if err != nil {
		slog.Warn("Preview rebuild failed", logfields.Error(err))
		s.status.setError(err)
		return
	}
	s.status.setSuccess()
	slog.Info("Preview rebuilt",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.Posts))
}

func (s *Server) setupWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range s.watchDirs {
		if err := watcher.Add(dir); err != nil {
			slog.Warn("Watch add failed", logfields.Path(dir), logfields.Error(err))
		}
	}
	return watcher, nil
}

// setupDebouncer creates the rebuild channel and a trigger that collapses
// event bursts into one request after a quiet period.
func setupDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// startWorker processes rebuild requests one at a time. A request arriving
// mid-rebuild marks a pending flag, so bursts end in exactly one trailing
// rebuild.
func (s *Server) startWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("Change detected; rebuilding page")
				s.rebuild(ctx)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (s *Server) startPeriodicRebuild(trigger func()) func() {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		slog.Warn("Periodic rebuild unavailable", logfields.Error(err))
		return func() {}
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(trigger),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		slog.Warn("Periodic rebuild unavailable", logfields.Error(err))
		return func() {}
	}
	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("interval", s.interval))
	return func() { _ = scheduler.Shutdown() }
}

func (s *Server) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := watcher.Add(ev.Name); err != nil {
				slog.Warn("Watch add failed", logfields.Path(ev.Name), logfields.Error(err))
			}
		}
	}
	slog.Debug("File change detected",
		logfields.Path(ev.Name),
		slog.String("op", ev.Op.String()))
	trigger()
}

func (s *Server) shutdown(srv *http.Server) error {
	slog.Info("Shutting down preview server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	if base == "Thumbs.db" {
		return true
	}

	return false
}
