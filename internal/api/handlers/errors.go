package handlers

import (
	"errors"
	"log"
	"net/http"

	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/services"
)

// writeDomainError maps the services' sentinel errors onto HTTP statuses.
// Validation problems are the caller's to fix (400), corrupt snapshots are
// unprocessable (422), lifecycle conflicts are 409.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate),
		errors.Is(err, domain.ErrInvalidTimeWindow),
		errors.Is(err, domain.ErrUnpairedStop):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrRouteNotPlannable):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCancelled):
		writeError(w, r, http.StatusServiceUnavailable, "computation cancelled")
	default:
		log.Printf("unhandled service error: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
