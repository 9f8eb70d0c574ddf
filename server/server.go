// Package server exposes a small status surface for the worker: liveness,
// per-feed state and recent leads. It is read-only, all writes happen in the
// monitor loop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/leadscout/leadscout/pkg/domain"
)

//go:generate moq -out mocks/feed_reader.go -pkg mocks -skip-ensure -fmt goimports . FeedReader
//go:generate moq -out mocks/lead_reader.go -pkg mocks -skip-ensure -fmt goimports . LeadReader
//go:generate moq -out mocks/heartbeat_reader.go -pkg mocks -skip-ensure -fmt goimports . HeartbeatReader

// FeedReader reads feed registry state
type FeedReader interface {
	ListAll(ctx context.Context) ([]domain.Feed, error)
}

// LeadReader reads persisted leads
type LeadReader interface {
	GetByConsumer(ctx context.Context, consumerID string, limit int) ([]domain.Lead, error)
	Count(ctx context.Context) (int, error)
}

// HeartbeatReader reads the worker heartbeat
type HeartbeatReader interface {
	Get(ctx context.Context) (*domain.Heartbeat, error)
}

// Server represents HTTP server instance
type Server struct {
	feeds     FeedReader
	leads     LeadReader
	heartbeat HeartbeatReader
	listen    string
	timeout   time.Duration
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params holds server dependencies and settings
type Params struct {
	Feeds     FeedReader
	Leads     LeadReader
	Heartbeat HeartbeatReader
	Listen    string
	Timeout   time.Duration
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		feeds:     p.Feeds,
		leads:     p.Leads,
		heartbeat: p.Heartbeat,
		listen:    p.Listen,
		timeout:   p.Timeout,
		version:   p.Version,
		debug:     p.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting status server on %s", s.listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         s.listen,
		Handler:      s.router,
		ReadTimeout:  s.timeout,
		WriteTimeout: s.timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down status server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("leadscout", "leadscout", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 64)) // 64KB, read-only API
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /leads", s.leadsHandler)
	})
}

// feedStatus is the per-feed slice of the status response
type feedStatus struct {
	Name           string     `json:"name"`
	Watermark      time.Time  `json:"watermark"`
	ErrorStreak    int        `json:"error_streak"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
}

// statusResponse is the /api/v1/status payload
type statusResponse struct {
	Status          string       `json:"status"`
	Version         string       `json:"version"`
	LastRunAt       *time.Time   `json:"last_run_at,omitempty"`
	ActiveResources int          `json:"active_resources"`
	TotalLeads      int          `json:"total_leads"`
	Feeds           []feedStatus `json:"feeds"`
}

// statusHandler returns worker liveness and per-feed state
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{Status: "ok", Version: s.version, Feeds: []feedStatus{}}

	hb, err := s.heartbeat.Get(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't read heartbeat")
		return
	}
	if hb != nil {
		resp.LastRunAt = &hb.LastRunAt
		resp.ActiveResources = hb.ActiveResources
	}

	feeds, err := s.feeds.ListAll(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't list feeds")
		return
	}
	for _, f := range feeds {
		resp.Feeds = append(resp.Feeds, feedStatus{
			Name:           f.Name,
			Watermark:      f.Watermark,
			ErrorStreak:    f.ErrorStreak,
			SuspendedUntil: f.SuspendedUntil,
		})
	}

	if total, err := s.leads.Count(r.Context()); err == nil {
		resp.TotalLeads = total
	}

	rest.RenderJSON(w, resp)
}

// leadsHandler returns recent leads for one consumer
func (s *Server) leadsHandler(w http.ResponseWriter, r *http.Request) {
	consumerID := r.URL.Query().Get("consumer")
	if consumerID == "" {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest,
			errors.New("missing parameter"), "consumer is required")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			rest.SendErrorJSON(w, r, lgr.Default(), http.StatusBadRequest,
				fmt.Errorf("bad limit %q", v), "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	leads, err := s.leads.GetByConsumer(r.Context(), consumerID, limit)
	if err != nil {
		rest.SendErrorJSON(w, r, lgr.Default(), http.StatusInternalServerError, err, "can't list leads")
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	rest.RenderJSON(w, leads)
}
