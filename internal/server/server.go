// Package server provides the HTTP API for Kensaku.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/engine"
	"github.com/hyperjump/kensaku/internal/indexer"
	"github.com/hyperjump/kensaku/internal/storage"
	"go.uber.org/zap"
)

// WatchService is the subset of the watcher the HTTP API drives.
type WatchService interface {
	AddDirectory(path string, syncExisting bool) error
	RemoveDirectory(path string) error
	Directories() []string
}

// Server is the HTTP server for the Kensaku API.
type Server struct {
	engine  *engine.Engine
	indexer *indexer.Indexer
	storage storage.Storage
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server

	watch      WatchService
	configPath string
	watchCfgMu sync.Mutex
}

// NewServer creates a server with the given dependencies.
func NewServer(
	eng *engine.Engine,
	idx *indexer.Indexer,
	store storage.Storage,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  eng,
		indexer: idx,
		storage: store,
		config:  cfg,
		logger:  logger,
	}
}

// EnableWatch wires a watch service into the API. configPath, when non-empty,
// is used to persist watch directory changes.
func (s *Server) EnableWatch(w WatchService, configPath string) {
	s.watch = w
	s.configPath = configPath
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/documents", s.handleIndexDocument)
	r.Get("/api/v1/documents/{id}", s.handleGetDocument)
	r.Delete("/api/v1/documents/{id}", s.handleDeleteDocument)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/watch/directories", s.handleWatchDirectoriesList)
	r.Post("/api/v1/watch/directories", s.handleWatchDirectoriesAdd)
	r.Delete("/api/v1/watch/directories", s.handleWatchDirectoriesRemove)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := s.routes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
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
