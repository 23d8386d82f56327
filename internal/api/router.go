package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/api/handlers"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/api/response"
	"github.com/ramonehamilton/PokePoke-Tracker/internal/version"
)

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)
	s.router.Get("/metrics", s.metricsHandler)

	// HTML pages
	pages := handlers.NewPageHandler(s.tracker, s.chart)
	s.router.Get("/", pages.Index)
	s.router.Get("/register_deck", pages.RegisterDeck)
	s.router.Post("/register_deck", pages.RegisterDeck)
	s.router.Get("/record_match", pages.RecordMatch)
	s.router.Post("/record_match", pages.RecordMatch)
	s.router.Get("/select_deck", pages.SelectDeck)
	s.router.Post("/select_deck", pages.SelectDeck)
	s.router.Get("/match_history", pages.MatchHistory)
	s.router.Post("/match_history", pages.MatchHistory)
	s.router.Get("/stats/{deckID}", pages.Stats)
	s.router.Get("/stats/{deckID}/chart", pages.StatsChart)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Content-Type enforcement for requests with bodies
		r.Use(jsonContentTypeMiddleware)

		// Deck routes
		deckHandler := handlers.NewDeckHandler(s.tracker)
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.GetDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Get("/{deckID}/stats", deckHandler.GetDeckStats)
		})

		// Match routes
		matchHandler := handlers.NewMatchHandler(s.tracker)
		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.GetMatches)
			r.Post("/", matchHandler.RecordMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
		})
	})
}

// pinger is implemented by trackers that can check their store.
type pinger interface {
	Ping(ctx context.Context) error
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.tracker.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			response.ServiceUnavailable(w, "database unavailable")
			return
		}
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "pokepoke-tracker",
		"version": version.String(),
	})
}

// metricsHandler returns request counts and per-route latency.
func (s *Server) metricsHandler(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.metrics.GetStats())
}
