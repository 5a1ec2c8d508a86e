package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"soylana/internal/observability"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// route wraps a handler with CORS headers, access logging and HTTP metrics.
// The route label is the pattern, not the raw path, to keep metric
// cardinality bounded.
func (s *Server) route(label string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()

		s.setCORSHeaders(w, r)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		elapsed := time.Since(start)
		observability.RecordHTTPResponse(label, statusClass(rec.status), elapsed.Seconds())
		s.logger.Printf("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed.Round(time.Millisecond), reqID)
	}
}

// handlePreflight answers CORS preflight requests for all routes.
func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	s.setCORSHeaders(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" || !s.corsOrigins[origin] {
		return
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Vary", "Origin")
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
