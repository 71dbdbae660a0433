// Package server provides the HTTP API for the ayudante service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/acadbot/ayudante/internal/config"
	"github.com/acadbot/ayudante/internal/corpus"
	"github.com/acadbot/ayudante/internal/dialog"
	"github.com/acadbot/ayudante/internal/storage"
)

// ReloadFunc refreshes the corpus from its source and returns the number of
// records loaded.
type ReloadFunc func(ctx context.Context) (int, error)

// Server is the HTTP server for the ayudante API.
type Server struct {
	manager *dialog.Manager
	holder  *corpus.Holder
	storage storage.Storage
	reload  ReloadFunc
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. reload may be nil
// when the corpus has no reloadable source.
func NewServer(
	manager *dialog.Manager,
	holder *corpus.Holder,
	store storage.Storage,
	reload ReloadFunc,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		manager: manager,
		holder:  holder,
		storage: store,
		reload:  reload,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/api/v1/preguntar", s.handleAsk)
	r.Get("/api/v1/status", s.handleStatus)
	r.Post("/api/v1/recargar", s.handleReload)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
