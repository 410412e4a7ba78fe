package server

import (
	"context"
	"encoding/json"
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

	"github.com/umputun/inspo/pkg/domain"
	"github.com/umputun/inspo/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . Feed
//go:generate moq -out mocks/engagement.go -pkg mocks -skip-ensure -fmt goimports . Engagement
//go:generate moq -out mocks/realtime.go -pkg mocks -skip-ensure -fmt goimports . Realtime
//go:generate moq -out mocks/writer.go -pkg mocks -skip-ensure -fmt goimports . ItemWriter

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	feed       Feed
	engagement Engagement
	realtime   Realtime
	writer     ItemWriter
	version    string
	debug      bool

	hub *hub

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Feed interface for feed page and single-item reads
type Feed interface {
	Fetch(ctx context.Context, req domain.FeedRequest) (*domain.FeedPage, error)
	ItemByID(ctx context.Context, id string) (*domain.FeedItem, error)
}

// Engagement interface for toggling collect/like markers
type Engagement interface {
	Set(ctx context.Context, itemID, userID string, kind domain.EngagementKind, desired bool) (bool, error)
}

// Realtime interface for the live feed-change subscription
type Realtime interface {
	Subscribe(handlers feed.Handlers) (teardown func())
}

// ItemWriter interface for the thin ingest path over the content store
type ItemWriter interface {
	CreateFeedItem(ctx context.Context, item *domain.FeedItem) error
	UpdateFeedItem(ctx context.Context, item *domain.FeedItem) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, fd Feed, engagement Engagement, realtime Realtime, writer ItemWriter, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		feed:       fd,
		engagement: engagement,
		realtime:   realtime,
		writer:     writer,
		version:    version,
		debug:      debug,
		hub:        newHub(),
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and the live-update hub, handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	go s.hub.run(ctx)

	// one realtime subscription feeds all websocket clients
	teardown := s.realtime.Subscribe(feed.Handlers{
		OnInsert: func(item *domain.FeedItem) { s.hub.broadcastItem(msgItemInserted, item) },
		OnUpdate: func(item *domain.FeedItem) { s.hub.broadcastItem(msgItemUpdated, item) },
	})
	defer teardown()

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
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
	s.router.Use(rest.AppInfo("inspo", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feed", s.feedHandler)
		r.HandleFunc("GET /items/{id}", s.itemHandler)
		r.HandleFunc("POST /items", s.createItemHandler)
		r.HandleFunc("PUT /items/{id}", s.updateItemHandler)
		r.HandleFunc("POST /items/{id}/engagement", s.engagementHandler)
	})

	s.router.HandleFunc("GET /ws/feed", s.wsHandler)
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// renderJSON sends JSON response
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
