package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/blogbuilder/internal/build"
	"github.com/mkarlsen/blogbuilder/internal/output"
)

// stubBuilder writes a fixed page into the sink, or fails.
type stubBuilder struct {
	sink *output.MemorySink
	page string
	err  error
	runs atomic.Int32
}

func (b *stubBuilder) Run(context.Context) (*build.Report, error) {
	b.runs.Add(1)
	if b.err != nil {
		return &build.Report{Status: build.StatusFailed}, b.err
	}
	_ = b.sink.Write(b.page)
	return &build.Report{BuildID: "test-build", Status: build.StatusSuccess, Posts: 1}, nil
}

func newTestServer(builder *stubBuilder) *Server {
	return NewServer(builder, builder.sink, "127.0.0.1:0")
}

func TestHandlePageBeforeFirstBuild(t *testing.T) {
	srv := newTestServer(&stubBuilder{sink: output.NewMemorySink()})

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePageServesLatestBuild(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "<html>v1</html>"}
	srv := newTestServer(builder)
	srv.rebuild(context.Background())

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>v1</html>", rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestHandlePageKeepsLastGoodPageAfterFailure(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "<html>good</html>"}
	srv := newTestServer(builder)
	srv.rebuild(context.Background())

	builder.err = errors.New("posts directory vanished")
	srv.rebuild(context.Background())

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>good</html>", rec.Body.String())
}

func TestHandlePageUnknownPath(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "x"}
	srv := newTestServer(builder)
	srv.rebuild(context.Background())

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "x"}
	srv := newTestServer(builder)

	get := func() (int, map[string]any) {
		rec := httptest.NewRecorder()
		srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body
	}

	code, body := get()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "waiting", body["status"])

	srv.rebuild(context.Background())
	code, body = get()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["last_build"])

	builder.err = errors.New("boom")
	srv.rebuild(context.Background())
	code, body = get()
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Contains(t, body["last_error"], "boom")
}

func TestMetricsEndpointMounted(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "x"}
	srv := newTestServer(builder)
	srv.WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics here"))
	}))

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics here", rec.Body.String())
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	rebuildReq, trigger := setupDebouncer()

	for range 10 {
		trigger()
	}

	select {
	case <-rebuildReq:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced rebuild request never arrived")
	}

	select {
	case <-rebuildReq:
		t.Fatal("burst produced more than one rebuild request")
	case <-time.After(2 * debounceDelay):
	}
}

func TestWorkerRebuilds(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "x"}
	srv := newTestServer(builder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuildReq := make(chan struct{}, 1)
	srv.startWorker(ctx, rebuildReq)

	rebuildReq <- struct{}{}
	require.Eventually(t, func() bool { return builder.runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestShouldIgnoreEvent(t *testing.T) {
	assert.True(t, shouldIgnoreEvent("/tmp/.hidden.md"))
	assert.True(t, shouldIgnoreEvent("/tmp/#foo#"))
	assert.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	assert.True(t, shouldIgnoreEvent("/tmp/foo.swx"))
	assert.True(t, shouldIgnoreEvent("/tmp/backup~"))
	assert.True(t, shouldIgnoreEvent("/tmp/.DS_Store"))
	assert.True(t, shouldIgnoreEvent("/tmp/Thumbs.db"))
	assert.False(t, shouldIgnoreEvent("/tmp/visible.md"))
	assert.False(t, shouldIgnoreEvent("/tmp/blog_template.html"))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	builder := &stubBuilder{sink: output.NewMemorySink(), page: "x"}
	srv := NewServer(builder, builder.sink, "127.0.0.1:0", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("preview server did not stop on cancel")
	}
}
