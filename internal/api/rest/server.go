package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/victoria/internal/cache"
	"github.com/fortuna/victoria/internal/service"
	"github.com/fortuna/victoria/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, rc *cache.RedisCache, seasons *service.SeasonService) *Server {
	handler := NewHandler(db, rc, seasons)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Processing
	api.HandleFunc("/seasons/{season}/process", handler.ProcessSeason).Methods("POST")
	api.HandleFunc("/seasons/{season}/runs/latest", handler.GetLatestRun).Methods("GET")
	api.HandleFunc("/seasons/{season}/report", handler.GetSeasonReport).Methods("GET")

	// Season totals
	api.HandleFunc("/seasons/{season}/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/seasons/{season}/teams", handler.GetTeams).Methods("GET")

	// Rotation analysis
	api.HandleFunc("/seasons/{season}/substitutions", handler.GetSubstitutions).Methods("GET")
	api.HandleFunc("/seasons/{season}/substitutions/pairings", handler.GetPairings).Methods("GET")
	api.HandleFunc("/seasons/{season}/substitutions/players", handler.GetPlayerFrequency).Methods("GET")
	api.HandleFunc("/seasons/{season}/substitutions/timing", handler.GetTimingPatterns).Methods("GET")
	api.HandleFunc("/seasons/{season}/substitutions/situations", handler.GetSituations).Methods("GET")
	api.HandleFunc("/seasons/{season}/substitutions/period-transitions", handler.GetPeriodTransitions).Methods("GET")
	api.HandleFunc("/seasons/{season}/substitutions/mass", handler.GetMassSubstitutions).Methods("GET")

	// Assist network
	api.HandleFunc("/seasons/{season}/assists/network", handler.GetAssistNetwork).Methods("GET")
	api.HandleFunc("/seasons/{season}/assists/leaders", handler.GetAssistLeaders).Methods("GET")
	api.HandleFunc("/seasons/{season}/assists/receivers", handler.GetAssistReceivers).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
