package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// statusHandler returns scheduler state, monitor counters and seen-set size
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.monitor.Stats()

	status := map[string]interface{}{
		"status":    "ok",
		"version":   s.config.Version,
		"time":      time.Now().UTC(),
		"scheduler": s.scheduler.State(),
		"monitor":   stats,
	}

	if count, err := s.seen.Count(r.Context()); err == nil {
		status["seen"] = count
	} else {
		log.Printf("[WARN] failed to count seen events: %v", err)
	}

	renderJSON(w, r, http.StatusOK, status)
}

// fetchHandler triggers one synchronous fetch cycle
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.monitor.Fetch(r.Context()); err != nil {
		log.Printf("[ERROR] on-demand fetch failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"result": "fetched"})
}

// startHandler starts periodic fetching with the configured interval
func (s *Server) startHandler(w http.ResponseWriter, r *http.Request) {
	// detached from the request context, the scheduler outlives the request
	s.scheduler.Start(context.WithoutCancel(r.Context()), s.config.Interval)
	renderJSON(w, r, http.StatusOK, map[string]string{"result": "started"})
}

// stopHandler stops periodic fetching, an in-flight cycle completes first
func (s *Server) stopHandler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.Stop()
	renderJSON(w, r, http.StatusOK, map[string]string{"result": "stopped"})
}

// renderJSON sends data as JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
