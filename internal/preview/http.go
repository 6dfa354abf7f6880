package preview

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/healthz", s.handleHealthz)
	if s.metricsH != nil {
		mux.Handle("/metrics", s.metricsH)
	}
	return mux
}

// handlePage serves the latest successfully built page. Until one exists the
// endpoint answers 503 so reloading browsers keep polling.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	_, _, hasGoodBuild := s.status.snapshot()
	if !hasGoodBuild {
		http.Error(w, "no successful build yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, s.sink.Page())
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	lastErr, lastBuild, hasGoodBuild := s.status.snapshot()

	status := "ok"
	code := http.StatusOK
	switch {
	case !hasGoodBuild:
		status = "waiting"
		code = http.StatusServiceUnavailable
	case lastErr != nil:
		status = "degraded"
	}

	body := map[string]any{"status": status}
	if lastErr != nil {
		body["last_error"] = lastErr.Error()
	}
	if hasGoodBuild {
		body["last_build"] = lastBuild.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
