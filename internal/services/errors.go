package services

import "errors"

var (
	// ErrCancelled is returned when the caller's context fires while an
	// insertion search is still running. Safe to retry.
	ErrCancelled = errors.New("computation cancelled")

	// ErrRouteNotPlannable is returned when a completed or cancelled
	// route is offered for matching or re-sequencing.
	ErrRouteNotPlannable = errors.New("route not plannable")
)
