package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"delivery-matching-service/internal/api/dto"
	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/ports"
	"delivery-matching-service/internal/services"
)

// ScoreHandler exposes single-pair compatibility scoring for the "apply
// to announcement" and "browse matches" flows.
type ScoreHandler struct {
	Clock ports.Clock
	Cfg   config.Matching
}

func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScoreRequest

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

	candidate, err := services.Score(r.Context(), req.Announcement.ToDomain(), req.Route.ToDomain(), now, h.Cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MatchCandidateFromDomain(candidate))
}
