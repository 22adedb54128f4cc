// Package rest serves the scraping pipeline over HTTP.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/fieldhouse/internal/batch"
	"github.com/fortuna/fieldhouse/internal/scrape"
)

// Server is the REST API server.
type Server struct {
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server.
func NewServer(port string, scraper *scrape.Scraper, jobs *batch.Service) *Server {
	handler := NewHandler(scraper)
	jobHandler := NewJobHandler(jobs)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games/ids", handler.GetGameIDs).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/info", handler.GetGameInfo).Methods("GET")
	api.HandleFunc("/games/{gameID}/boxscore", handler.GetGameBoxscore).Methods("GET")
	api.HandleFunc("/games/{gameID}/plays", handler.GetGamePlayByPlay).Methods("GET")
	api.HandleFunc("/games/{gameID}/shooting", handler.GetGameShooting).Methods("GET")
	api.HandleFunc("/games/{gameID}/score-check", handler.GetGameScoreCheck).Methods("GET")

	// Players
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	// Teams
	api.HandleFunc("/teams/{team}/schedule", handler.GetTeamSchedule).Methods("GET")

	// Batch scrape jobs
	api.HandleFunc("/scrapes", jobHandler.CreateJob).Methods("POST")
	api.HandleFunc("/scrapes", jobHandler.ListJobs).Methods("GET")
	api.HandleFunc("/scrapes/{jobID}", jobHandler.GetJob).Methods("GET")
	api.HandleFunc("/scrapes/{jobID}/result", jobHandler.GetJobResult).Methods("GET")

	return &Server{
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
