// Package api exposes the stegbit vault and chunk operations over REST.
//
// Routes live under /api/v1 behind an X-API-Key check; /metrics is left
// open for Prometheus scraping.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router for a server. Split from StartServer so
// tests can drive handlers without binding a port.
func NewRouter(server *Server) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	auth := apiKeyMiddleware(server.config.APIKey)

	r.Route("/api/v1", func(r chi.Router) {
		if server.metrics != nil {
			r.Use(server.metrics.InstrumentAuthMiddleware(auth))
		} else {
			r.Use(auth)
		}

		r.Get("/health", server.instrument("GET", "/api/v1/health", server.handleHealth))

		// Image storage
		r.Post("/images", server.instrument("POST", "/api/v1/images", server.handleUploadImage))
		r.Get("/images", server.instrument("GET", "/api/v1/images", server.handleListImages))
		r.Get("/images/{id}", server.instrument("GET", "/api/v1/images/{id}", server.handleGetImage))
		r.Delete("/images/{id}", server.instrument("DELETE", "/api/v1/images/{id}", server.handleDeleteImage))

		// Chunk operations
		r.Get("/images/{id}/chunks", server.instrument("GET", "/api/v1/images/{id}/chunks", server.handleListChunks))
		r.Post("/images/{id}/chunks", server.instrument("POST", "/api/v1/images/{id}/chunks", server.handleEmbedChunk))
		r.Get("/images/{id}/chunks/{type}", server.instrument("GET", "/api/v1/images/{id}/chunks/{type}", server.handleExtractChunk))
		r.Delete("/images/{id}/chunks/{type}", server.instrument("DELETE", "/api/v1/images/{id}/chunks/{type}", server.handleStripChunk))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured and blocks
// until it fails.
func StartServer(store ImageStore, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, config, metrics)
	r := NewRouter(server)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting stegbit REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, r)
}

func (s *Server) instrument(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	if s.metrics == nil {
		return handler
	}
	return s.metrics.InstrumentHandler(method, endpoint, handler)
}
