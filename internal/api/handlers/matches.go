package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"delivery-matching-service/internal/api/dto"
	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/ports"
	"delivery-matching-service/internal/services"
)

// MatchHandler serves ranked match candidates: an ad hoc ranking over
// caller-supplied snapshots, and a cached per-deliverer discovery list
// backed by the repositories.
type MatchHandler struct {
	Announcements ports.AnnouncementRepository
	Routes        ports.RouteRepository
	Cache         ports.MatchCache
	Clock         ports.Clock
	Cfg           config.Matching
	CacheTTL      time.Duration
}

// Rank scores caller-supplied announcement and route pools.
func (h *MatchHandler) Rank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RankRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.MinScore < 0 || req.MinScore > 100 {
		writeError(w, r, http.StatusBadRequest, "min_score must be between 0 and 100")
		return
	}

	announcements := make([]domain.Announcement, 0, len(req.Announcements))
	for _, a := range req.Announcements {
		announcements = append(announcements, a.ToDomain())
	}
	routes := make([]domain.Route, 0, len(req.Routes))
	for _, rt := range req.Routes {
		routes = append(routes, rt.ToDomain())
	}

	now := h.Clock.Now()
	if req.Now != nil {
		now = *req.Now
	}

	opts := services.RankOptions{
		MinScore:                 req.MinScore,
		AllRoutesPerAnnouncement: req.AllRoutesPerAnnouncement,
	}
	candidates, err := services.RankMatches(r.Context(), announcements, routes, opts, now, h.Cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, rankResponse(candidates))
}

// ListForDeliverer serves the match discovery list for one deliverer,
// recomputing from stored snapshots on cache misses.
func (h *MatchHandler) ListForDeliverer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	delivererID := strings.TrimPrefix(r.URL.Path, "/matches/")
	if delivererID == "" || strings.Contains(delivererID, "/") {
		writeError(w, r, http.StatusBadRequest, "deliverer id is required")
		return
	}

	ctx := r.Context()

	if cached, found, err := h.Cache.GetRanked(ctx, delivererID); err != nil {
		// The cache is an optimization; fall through to a fresh ranking.
		log.Printf("match cache read failed: deliverer=%s err=%v", delivererID, err)
	} else if found {
		writeJSON(w, r, http.StatusOK, rankResponse(cached))
		return
	}

	announcements, err := h.Announcements.ListOpen(ctx)
	if err != nil {
		log.Printf("list open announcements failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	allRoutes, err := h.Routes.ListPlannable(ctx)
	if err != nil {
		log.Printf("list plannable routes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	routes := allRoutes[:0]
	for _, rt := range allRoutes {
		if rt.DelivererID == delivererID {
			routes = append(routes, rt)
		}
	}

	opts := services.RankOptions{AllRoutesPerAnnouncement: true}
	candidates, err := services.RankMatches(ctx, announcements, routes, opts, h.Clock.Now(), h.Cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Cache.SetRanked(ctx, delivererID, candidates, h.CacheTTL); err != nil {
		log.Printf("match cache write failed: deliverer=%s err=%v", delivererID, err)
	}

	writeJSON(w, r, http.StatusOK, rankResponse(candidates))
}

func rankResponse(candidates []domain.MatchCandidate) dto.RankResponse {
	res := dto.RankResponse{Candidates: make([]dto.MatchCandidateResponse, 0, len(candidates))}
	for _, c := range candidates {
		res.Candidates = append(res.Candidates, dto.MatchCandidateFromDomain(c))
	}
	return res
}
