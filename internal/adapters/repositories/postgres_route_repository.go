package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/platform/obs"
)

// ErrRouteNotFound is returned when a requested route does not exist.
var ErrRouteNotFound = errors.New("route not found")

// Postgres-backed implementation of the RouteRepository port. Routes are
// always returned fully hydrated: stops loaded and in stored order.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// ListPlannable returns every DRAFT or ACTIVE route with its stops.
func (r *PostgresRouteRepository) ListPlannable(ctx context.Context) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "routes.ListPlannable")(&err)

	if r.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	query := `
	SELECT
		route_id, deliverer_id, max_capacity_kg, vehicle_type,
		cooling_capable, current_lat, current_lon, current_payload_kg,
		start_time, status
	FROM routes
	WHERE status IN ('DRAFT', 'ACTIVE')
	ORDER BY route_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plannable routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0, 16)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list plannable routes: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plannable routes: row iteration: %w", err)
	}

	for i := range routes {
		stops, err := r.loadStops(ctx, routes[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list plannable routes: %w", err)
		}
		routes[i].Stops = stops
	}

	return routes, nil
}

// GetRoute returns one route by id with its stops.
func (r *PostgresRouteRepository) GetRoute(ctx context.Context, id string) (_ domain.Route, err error) {
	defer obs.Time(ctx, "routes.GetRoute")(&err)

	if r.DB == nil {
		return domain.Route{}, errors.New("route repository: DB is nil")
	}

	query := `
	SELECT
		route_id, deliverer_id, max_capacity_kg, vehicle_type,
		cooling_capable, current_lat, current_lon, current_payload_kg,
		start_time, status
	FROM routes
	WHERE route_id = $1;
	`
	row := r.DB.QueryRowContext(ctx, query, id)
	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Route{}, fmt.Errorf("get route %s: %w", id, ErrRouteNotFound)
		}
		return domain.Route{}, fmt.Errorf("get route %s: %w", id, err)
	}

	stops, err := r.loadStops(ctx, route.ID)
	if err != nil {
		return domain.Route{}, fmt.Errorf("get route %s: %w", id, err)
	}
	route.Stops = stops
	return route, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanRoute(row rowScanner) (domain.Route, error) {
	var route domain.Route
	var currentLat, currentLon sql.NullFloat64
	var startTime sql.NullTime

	err := row.Scan(
		&route.ID, &route.DelivererID, &route.MaxCapacityKg, &route.VehicleType,
		&route.CoolingCapable, &currentLat, &currentLon, &route.CurrentPayloadKg,
		&startTime, &route.Status,
	)
	if err != nil {
		return domain.Route{}, err
	}

	if currentLat.Valid && currentLon.Valid {
		route.CurrentPosition = &domain.GeoPoint{Lat: currentLat.Float64, Lon: currentLon.Float64}
	}
	if startTime.Valid {
		route.StartTime = startTime.Time
	}
	return route, nil
}

func (r *PostgresRouteRepository) loadStops(ctx context.Context, routeID string) ([]domain.Stop, error) {
	query := `
	SELECT
		stop_id, kind, lat, lon, earliest, latest,
		service_minutes, payload_delta_kg, announcement_id
	FROM stops
	WHERE route_id = $1
	ORDER BY position;
	`
	rows, err := r.DB.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("load stops: query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 8)
	for rows.Next() {
		var s domain.Stop
		var earliest, latest sql.NullTime
		err := rows.Scan(
			&s.ID, &s.Kind, &s.Location.Lat, &s.Location.Lon,
			&earliest, &latest,
			&s.ServiceDurationMinutes, &s.PayloadDeltaKg, &s.AnnouncementID,
		)
		if err != nil {
			return nil, fmt.Errorf("load stops: scan row: %w", err)
		}
		s.Window = windowFromNullTimes(earliest, latest)
		stops = append(stops, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load stops: row iteration: %w", err)
	}
	return stops, nil
}
