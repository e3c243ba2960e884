package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cinelog/internal/api/handlers"
	"cinelog/internal/api/middleware"
	"cinelog/internal/config"
	"cinelog/internal/controllers"
	"cinelog/internal/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server       *http.Server
	db           *models.Database
	catalogCtrl  *controllers.CatalogController
	categoryCtrl *controllers.CategoryController
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, catalogCtrl *controllers.CatalogController, categoryCtrl *controllers.CategoryController, logger *logrus.Logger) *Server {
	s := &Server{
		db:           db,
		catalogCtrl:  catalogCtrl,
		categoryCtrl: categoryCtrl,
		logger:       logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// Health check
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("GET /health", healthHandler.ServeHTTP)

	// Status endpoint
	statusHandler := handlers.NewStatusHandler(s.db, s.logger)
	mux.HandleFunc("GET /status", statusHandler.ServeHTTP)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Catalog
	movieHandler := handlers.NewMovieHandler(s.catalogCtrl, s.logger)
	mux.HandleFunc("GET /api/movies/{id}", movieHandler.ServeHTTP)

	seriesHandler := handlers.NewSeriesHandler(s.catalogCtrl, s.logger)
	mux.HandleFunc("GET /api/series/{id}", seriesHandler.Details)
	mux.HandleFunc("GET /api/series/{id}/seasons/{number}", seriesHandler.Season)

	searchHandler := handlers.NewSearchHandler(s.catalogCtrl, s.logger)
	mux.HandleFunc("GET /api/search", searchHandler.ServeHTTP)

	// Category lists
	categoryHandler := handlers.NewCategoryHandler(s.categoryCtrl, s.logger)
	mux.HandleFunc("GET /api/categories/{name}", categoryHandler.ServeHTTP)

	// Watch history
	historyHandler := handlers.NewHistoryHandler(s.db, s.logger)
	mux.HandleFunc("POST /api/history", historyHandler.Record)
	mux.HandleFunc("GET /api/history", historyHandler.List)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
