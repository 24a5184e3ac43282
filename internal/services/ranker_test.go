package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"delivery-matching-service/internal/config"
	"delivery-matching-service/internal/domain"
)

func TestRankMatchesOrdersByScore(t *testing.T) {
	route := corridorRoute(0, 5, 200)
	cfg := config.DefaultMatching()

	// Detours of 0.5, 0.75 and 3.5 km score 85, 75 and 55; the last one
	// falls under the default threshold of 60.
	nearest := announcementAt("ann-close", at(0, 0.25), at(5, 0.25), 10)
	mid := announcementAt("ann-mid", at(0, 0.375), at(5, 0.375), 10)
	far := announcementAt("ann-far", at(0, 1.75), at(5, 1.75), 10)

	got, err := RankMatches(
		context.Background(),
		[]domain.Announcement{far, nearest, mid},
		[]domain.Route{route},
		RankOptions{},
		testStart,
		cfg,
	)
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Equal(t, "ann-close", got[0].AnnouncementID)
	require.Equal(t, 85, got[0].Score)
	require.Equal(t, "ann-mid", got[1].AnnouncementID)
	require.Equal(t, 75, got[1].Score)
}

func TestRankMatchesMinScoreOverride(t *testing.T) {
	route := corridorRoute(0, 5, 200)
	cfg := config.DefaultMatching()

	nearest := announcementAt("ann-close", at(0, 0.25), at(5, 0.25), 10)
	mid := announcementAt("ann-mid", at(0, 0.375), at(5, 0.375), 10)

	got, err := RankMatches(
		context.Background(),
		[]domain.Announcement{nearest, mid},
		[]domain.Route{route},
		RankOptions{MinScore: 80},
		testStart,
		cfg,
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ann-close", got[0].AnnouncementID)
}

func TestRankMatchesBestRoutePerAnnouncement(t *testing.T) {
	near := corridorRoute(0, 5, 200)
	far := corridorRoute(0, 5, 200)
	far.ID = "route-2"
	far.DelivererID = "deliverer-2"
	// Shift the second corridor off-axis so the same announcement costs a
	// bigger detour there.
	far.Stops[0].Location = at(0, 0.75)
	far.Stops[1].Location = at(5, 0.75)

	cfg := config.DefaultMatching()
	ann := announcementAt("ann-1", at(0, 0.25), at(5, 0.25), 10)

	got, err := RankMatches(
		context.Background(),
		[]domain.Announcement{ann},
		[]domain.Route{far, near},
		RankOptions{},
		testStart,
		cfg,
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "route-1", got[0].RouteID)

	all, err := RankMatches(
		context.Background(),
		[]domain.Announcement{ann},
		[]domain.Route{far, near},
		RankOptions{AllRoutesPerAnnouncement: true},
		testStart,
		cfg,
	)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "route-1", all[0].RouteID)
	require.Equal(t, "route-2", all[1].RouteID)
	require.Greater(t, all[0].Score, all[1].Score)
}

func TestRankMatchesSkipsIneligibleInputs(t *testing.T) {
	cfg := config.DefaultMatching()
	ann := announcementAt("ann-1", at(0, 0.25), at(5, 0.25), 10)

	completed := corridorRoute(0, 5, 200)
	completed.Status = domain.RouteCompleted

	full := corridorRoute(0, 5, 200)
	full.ID = "route-full"
	full.Stops[0].PayloadDeltaKg = 200
	full.Stops[1].PayloadDeltaKg = -200

	got, err := RankMatches(
		context.Background(),
		[]domain.Announcement{ann},
		[]domain.Route{completed, full},
		RankOptions{},
		testStart,
		cfg,
	)
	require.NoError(t, err)
	require.Empty(t, got)

	matched := ann
	matched.Status = domain.AnnouncementMatched

	expired := announcementAt("ann-expired", at(0, 0.25), at(5, 0.25), 10)
	expired.DeliveryWindow = domain.TimeWindow{
		Earliest: testStart.Add(-3 * time.Hour),
		Latest:   testStart.Add(-2 * time.Hour),
	}

	got, err = RankMatches(
		context.Background(),
		[]domain.Announcement{matched, expired},
		[]domain.Route{corridorRoute(0, 5, 200)},
		RankOptions{},
		testStart,
		cfg,
	)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRankMatchesEmptyInputs(t *testing.T) {
	got, err := RankMatches(context.Background(), nil, nil, RankOptions{}, testStart, config.DefaultMatching())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRankMatchesPropagatesScoringError(t *testing.T) {
	ann := announcementAt("ann-1", at(0, 0.25), at(5, 0.25), 10)
	ann.WeightKg = -1

	_, err := RankMatches(
		context.Background(),
		[]domain.Announcement{ann},
		[]domain.Route{corridorRoute(0, 5, 200)},
		RankOptions{},
		testStart,
		config.DefaultMatching(),
	)
	require.Error(t, err)
}
