// Package server wires the store, planner, and HTTP handlers together.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"cityroute/internal/database"
	"cityroute/internal/handlers"
	"cityroute/internal/planner"
	"cityroute/internal/sqlite"
)

// Server wraps the HTTP server and all dependencies
type Server struct {
	httpServer *http.Server
	handler    *handlers.Handler
	store      database.Store
	listener   net.Listener
	addr       string
}

// Config holds server configuration
type Config struct {
	Addr         string // e.g. "127.0.0.1:8000" or "127.0.0.1:0" for a random port
	DataDir      string // seed CSV directory
	StoreBackend string // "memory" (default) or "sqlite"
	SQLitePath   string // database file, used when StoreBackend is "sqlite"

	Planner planner.Config
}

// New creates and initializes a new server (does not start it)
func New(cfg Config) (*Server, error) {
	var store database.Store
	switch cfg.StoreBackend {
	case "", "memory":
		log.Printf("Initializing in-memory store...")
		store = database.NewMemoryStore()
	case "sqlite":
		log.Printf("Initializing SQLite store...")
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}

	handler := &handlers.Handler{
		DB:      store,
		Planner: planner.New(store, cfg.Planner),
		SeedDir: cfg.DataDir,
	}

	mux := setupRoutes(handler)

	// Dev-friendly CORS, matching the front end's expectations
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingMiddleware(corsHandler.Handler(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		handler:    handler,
		store:      store,
		addr:       cfg.Addr,
	}, nil
}

// Start starts the server and returns the actual address (useful for random port)
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = listener
	actualAddr := listener.Addr().String()
	log.Printf("Starting server on %s", actualAddr)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return actualAddr, nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.store.Close()
}

// setupRoutes configures all HTTP routes
func setupRoutes(handler *handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", handler.HandleHealthCheck)

	mux.HandleFunc("POST /itinerary/generate", handler.HandleGenerate)
	mux.HandleFunc("POST /itinerary/regenerate", handler.HandleRegenerate)
	mux.HandleFunc("POST /restaurants/auto_pick", handler.HandleAutoPick)
	mux.HandleFunc("GET /itineraries/{id}", handler.HandleGetItinerary)
	mux.HandleFunc("GET /days/{id}", handler.HandleGetDay)
	mux.HandleFunc("POST /export", handler.HandleExport)
	mux.HandleFunc("GET /lookup/{kind}", handler.HandleLookup)

	return mux
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, lrw.statusCode, duration)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
