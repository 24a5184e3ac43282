package api

import (
	"net/http"
	"time"

	"delivery-matching-service/internal/api/handlers"
	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	announcements ports.AnnouncementRepository,
	routes ports.RouteRepository,
	matchCache ports.MatchCache,
	clk ports.Clock,
	cfg config.Matching,
	cacheTTL time.Duration,
) http.Handler {
	mux := http.NewServeMux()

	scoreHandler := &handlers.ScoreHandler{Clock: clk, Cfg: cfg}
	matchHandler := &handlers.MatchHandler{
		Announcements: announcements,
		Routes:        routes,
		Cache:         matchCache,
		Clock:         clk,
		Cfg:           cfg,
		CacheTTL:      cacheTTL,
	}
	optimizeHandler := &handlers.OptimizeHandler{Clock: clk, Cfg: cfg}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/score", scoreHandler.Score)
	mux.HandleFunc("/matches", matchHandler.Rank)
	mux.HandleFunc("/matches/", matchHandler.ListForDeliverer)
	mux.HandleFunc("/routes/optimize", optimizeHandler.Optimize)

	return requestIDMiddleware(loggingMiddleware(mux))
}
