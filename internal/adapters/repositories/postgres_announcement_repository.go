package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-matching-service/internal/domain"
	"delivery-matching-service/internal/platform/obs"
)

// Postgres-backed implementation of the AnnouncementRepository port.
type PostgresAnnouncementRepository struct{ DB *sql.DB }

func NewPostgresAnnouncementRepository(db *sql.DB) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{DB: db}
}

// ListOpen returns every announcement still awaiting a match, fully
// hydrated, oldest first.
func (r *PostgresAnnouncementRepository) ListOpen(ctx context.Context) (_ []domain.Announcement, err error) {
	defer obs.Time(ctx, "announcements.ListOpen")(&err)

	if r.DB == nil {
		return nil, errors.New("announcement repository: DB is nil")
	}

	query := `
	SELECT
		announcement_id,
		pickup_lat, pickup_lon, pickup_label,
		dropoff_lat, dropoff_lon, dropoff_label,
		pickup_earliest, pickup_latest,
		delivery_earliest, delivery_latest,
		weight_kg, is_fragile, needs_cooling,
		suggested_price, priority, status, created_at
	FROM announcements
	WHERE status = 'OPEN'
	ORDER BY created_at, announcement_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open announcements: query announcements table: %w", err)
	}
	defer rows.Close()

	announcements := make([]domain.Announcement, 0, 64)
	for rows.Next() {
		var a domain.Announcement
		var pickupEarliest, pickupLatest, deliveryEarliest, deliveryLatest sql.NullTime
		err := rows.Scan(
			&a.ID,
			&a.Pickup.Point.Lat, &a.Pickup.Point.Lon, &a.Pickup.Label,
			&a.Dropoff.Point.Lat, &a.Dropoff.Point.Lon, &a.Dropoff.Label,
			&pickupEarliest, &pickupLatest,
			&deliveryEarliest, &deliveryLatest,
			&a.WeightKg, &a.IsFragile, &a.NeedsCooling,
			&a.SuggestedPrice, &a.Priority, &a.Status, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list open announcements: scan row: %w", err)
		}
		a.PickupWindow = windowFromNullTimes(pickupEarliest, pickupLatest)
		a.DeliveryWindow = windowFromNullTimes(deliveryEarliest, deliveryLatest)
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open announcements: row iteration: %w", err)
	}

	return announcements, nil
}

// windowFromNullTimes maps nullable bounds to a TimeWindow; both NULL
// means fully flexible (the zero window).
func windowFromNullTimes(earliest, latest sql.NullTime) domain.TimeWindow {
	var w domain.TimeWindow
	if earliest.Valid {
		w.Earliest = earliest.Time
	}
	if latest.Valid {
		w.Latest = latest.Time
	}
	return w
}
