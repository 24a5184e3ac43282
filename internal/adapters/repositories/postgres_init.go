package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the postgres schema for announcement and route snapshots.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAnnouncementsQuery := `
	CREATE TABLE IF NOT EXISTS announcements (
		announcement_id   TEXT PRIMARY KEY,
		pickup_lat        DOUBLE PRECISION NOT NULL,
		pickup_lon        DOUBLE PRECISION NOT NULL,
		pickup_label      TEXT NOT NULL DEFAULT '',
		dropoff_lat       DOUBLE PRECISION NOT NULL,
		dropoff_lon       DOUBLE PRECISION NOT NULL,
		dropoff_label     TEXT NOT NULL DEFAULT '',
		pickup_earliest   TIMESTAMPTZ,
		pickup_latest     TIMESTAMPTZ,
		delivery_earliest TIMESTAMPTZ,
		delivery_latest   TIMESTAMPTZ,
		weight_kg         DOUBLE PRECISION NOT NULL,
		is_fragile        BOOLEAN NOT NULL DEFAULT FALSE,
		needs_cooling     BOOLEAN NOT NULL DEFAULT FALSE,
		suggested_price   DOUBLE PRECISION NOT NULL DEFAULT 0,
		priority          TEXT NOT NULL DEFAULT 'NORMAL',
		status            TEXT NOT NULL DEFAULT 'OPEN',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id           TEXT PRIMARY KEY,
		deliverer_id       TEXT NOT NULL,
		max_capacity_kg    DOUBLE PRECISION NOT NULL,
		vehicle_type       TEXT NOT NULL,
		cooling_capable    BOOLEAN NOT NULL DEFAULT FALSE,
		current_lat        DOUBLE PRECISION,
		current_lon        DOUBLE PRECISION,
		current_payload_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		start_time         TIMESTAMPTZ,
		status             TEXT NOT NULL DEFAULT 'DRAFT'
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id         TEXT PRIMARY KEY,
		route_id        TEXT NOT NULL REFERENCES routes(route_id) ON DELETE CASCADE,
		position        INTEGER NOT NULL,
		kind            TEXT NOT NULL,
		lat             DOUBLE PRECISION NOT NULL,
		lon             DOUBLE PRECISION NOT NULL,
		earliest        TIMESTAMPTZ,
		latest          TIMESTAMPTZ,
		service_minutes DOUBLE PRECISION NOT NULL DEFAULT 0,
		payload_delta_kg DOUBLE PRECISION NOT NULL,
		announcement_id TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexesQuery := `
	CREATE INDEX IF NOT EXISTS idx_announcements_status ON announcements(status);
	CREATE INDEX IF NOT EXISTS idx_routes_status ON routes(status);
	CREATE INDEX IF NOT EXISTS idx_stops_route_position ON stops(route_id, position);
	`

	statements := []string{
		createAnnouncementsQuery,
		createRoutesQuery,
		createStopsQuery,
		createIndexesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type AnnouncementSeed struct {
	AnnouncementID   string     `json:"announcement_id"`
	PickupLat        float64    `json:"pickup_lat"`
	PickupLon        float64    `json:"pickup_lon"`
	PickupLabel      string     `json:"pickup_label"`
	DropoffLat       float64    `json:"dropoff_lat"`
	DropoffLon       float64    `json:"dropoff_lon"`
	DropoffLabel     string     `json:"dropoff_label"`
	PickupEarliest   *time.Time `json:"pickup_earliest"`
	PickupLatest     *time.Time `json:"pickup_latest"`
	DeliveryEarliest *time.Time `json:"delivery_earliest"`
	DeliveryLatest   *time.Time `json:"delivery_latest"`
	WeightKg         float64    `json:"weight_kg"`
	IsFragile        bool       `json:"is_fragile"`
	NeedsCooling     bool       `json:"needs_cooling"`
	SuggestedPrice   float64    `json:"suggested_price"`
	Priority         string     `json:"priority"`
}

// Populate the announcements table from a JSON file for local runs.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed announcements: read %q: %w", jsonPath, err)
	}

	var data []AnnouncementSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed announcements: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.AnnouncementID) == "" {
			return fmt.Errorf("seed announcements: item at index %d: announcement_id cannot be empty", i+1)
		}
		if item.WeightKg < 0 {
			return fmt.Errorf("seed announcements: %s: weight_kg must not be negative", item.AnnouncementID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed announcements: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO announcements (
		announcement_id,
		pickup_lat, pickup_lon, pickup_label,
		dropoff_lat, dropoff_lon, dropoff_label,
		pickup_earliest, pickup_latest,
		delivery_earliest, delivery_latest,
		weight_kg, is_fragile, needs_cooling,
		suggested_price, priority
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (announcement_id) DO UPDATE SET
		pickup_lat = EXCLUDED.pickup_lat,
		pickup_lon = EXCLUDED.pickup_lon,
		dropoff_lat = EXCLUDED.dropoff_lat,
		dropoff_lon = EXCLUDED.dropoff_lon,
		weight_kg = EXCLUDED.weight_kg;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed announcements: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range data {
		priority := a.Priority
		if priority == "" {
			priority = "NORMAL"
		}
		if _, err := stmt.Exec(
			a.AnnouncementID,
			a.PickupLat, a.PickupLon, a.PickupLabel,
			a.DropoffLat, a.DropoffLon, a.DropoffLabel,
			a.PickupEarliest, a.PickupLatest,
			a.DeliveryEarliest, a.DeliveryLatest,
			a.WeightKg, a.IsFragile, a.NeedsCooling,
			a.SuggestedPrice, priority,
		); err != nil {
			return fmt.Errorf("seed announcements: insert %s: %w", a.AnnouncementID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed announcements: commit tx: %w", err)
	}

	return nil
}
