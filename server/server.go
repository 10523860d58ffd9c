package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/rcreative/giftmon/pkg/monitor"
	"github.com/rcreative/giftmon/pkg/scheduler"
)

//go:generate moq -out mocks/monitor.go -pkg mocks -skip-ensure -fmt goimports . Monitor
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/seen_counter.go -pkg mocks -skip-ensure -fmt goimports . SeenCounter

// Monitor interface for on-demand fetch and stats
type Monitor interface {
	Fetch(ctx context.Context) error
	Stats() monitor.Stats
}

// Scheduler interface for lifecycle control
type Scheduler interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
	State() scheduler.State
}

// SeenCounter reports the size of the durable seen-set
type SeenCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Config holds server settings
type Config struct {
	Listen   string
	Timeout  time.Duration
	Interval time.Duration // interval used when starting the scheduler over HTTP
	Version  string
	Debug    bool
}

// Server represents the HTTP control surface, an outer layer over the monitor
// and scheduler. It never mutates the seen-set directly.
type Server struct {
	config    Config
	monitor   Monitor
	scheduler Scheduler
	seen      SeenCounter

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(cfg Config, m Monitor, sched Scheduler, seen SeenCounter) *Server {
	s := &Server{
		config:    cfg,
		monitor:   m,
		scheduler: sched,
		seen:      seen,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.config.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.router,
		ReadTimeout:  s.config.Timeout,
		WriteTimeout: s.config.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("giftmon", "rcreative", s.config.Version))
	s.router.Use(rest.Ping)

	if s.config.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB, control requests carry no payload
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /fetch", s.fetchHandler)
		r.HandleFunc("POST /start", s.startHandler)
		r.HandleFunc("POST /stop", s.stopHandler)
	})
}
