package domain

import "errors"

// Validation sentinels for malformed input snapshots.
// These always indicate the caller must fix its data; the matching
// services return them unwrapped-checkable via errors.Is and never retry.
var (
	// A GeoPoint outside the valid latitude/longitude range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// A TimeWindow whose earliest bound is after its latest bound.
	ErrInvalidTimeWindow = errors.New("invalid time window")

	// A route snapshot that already violates its own payload invariant
	// before any insertion is attempted. Signals upstream data corruption.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// A route whose stops contain a pickup without its paired dropoff
	// (or the reverse) for the same announcement.
	ErrUnpairedStop = errors.New("unpaired stop")
)
