package dto

import (
	"time"

	"delivery-matching-service/internal/domain"
)

type ScoreRequest struct {
	Announcement Announcement `json:"announcement"`
	Route        Route        `json:"route"`
	Now          *time.Time   `json:"now,omitempty"`
}

type MatchCandidateResponse struct {
	AnnouncementID           string   `json:"announcement_id"`
	RouteID                  string   `json:"route_id"`
	DelivererID              string   `json:"deliverer_id"`
	Score                    int      `json:"score"`
	Reasons                  []string `json:"reasons"`
	ExtraDistanceKm          float64  `json:"extra_distance_km"`
	DetourPercentage         float64  `json:"detour_percentage"`
	EstimatedInsertionIndex  int      `json:"estimated_insertion_index"`
	PriceEstimate            float64  `json:"price_estimate"`
	EstimatedDurationMinutes int      `json:"estimated_duration_minutes"`
}

func MatchCandidateFromDomain(c domain.MatchCandidate) MatchCandidateResponse {
	reasons := make([]string, 0, len(c.Reasons))
	for _, r := range c.Reasons {
		reasons = append(reasons, string(r))
	}
	return MatchCandidateResponse{
		AnnouncementID:           c.AnnouncementID,
		RouteID:                  c.RouteID,
		DelivererID:              c.DelivererID,
		Score:                    c.Score,
		Reasons:                  reasons,
		ExtraDistanceKm:          c.ExtraDistanceKm,
		DetourPercentage:         c.DetourPercentage,
		EstimatedInsertionIndex:  c.EstimatedInsertionIndex,
		PriceEstimate:            c.PriceEstimate,
		EstimatedDurationMinutes: c.EstimatedDurationMinutes,
	}
}

type RankRequest struct {
	Announcements            []Announcement `json:"announcements"`
	Routes                   []Route        `json:"routes"`
	MinScore                 int            `json:"min_score"`
	AllRoutesPerAnnouncement bool           `json:"all_routes_per_announcement"`
	Now                      *time.Time     `json:"now,omitempty"`
}

type RankResponse struct {
	Candidates []MatchCandidateResponse `json:"candidates"`
}
