package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"delivery-matching-service/internal/api/dto"
	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/ports"
	"delivery-matching-service/internal/services"
)

// OptimizeHandler exposes route re-sequencing, used when a deliverer
// requests optimization or an accepted match needs insertion.
type OptimizeHandler struct {
	Clock ports.Clock
	Cfg   config.Matching
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

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

	now := h.Clock.Now()
	if req.Now != nil {
		now = *req.Now
	}

	pairs := make([]domain.PendingStopPair, 0, len(req.PendingPairs))
	for _, p := range req.PendingPairs {
		pairs = append(pairs, p.ToDomain())
	}

	optimized, err := services.OptimizeRoute(r.Context(), req.Route.ToDomain(), pairs, now, h.Cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizedRouteFromDomain(optimized))
}
