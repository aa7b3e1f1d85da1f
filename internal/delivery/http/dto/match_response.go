package dto

import (
	"time"

	"github.com/google/uuid"

	"tender-sync/internal/domain/match"
)

type MatchResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	RecordID  uuid.UUID `json:"record_id"`
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		RecordID:  m.RecordID,
		Score:     m.Score,
		Reasons:   m.Reasons,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func NewMatchListResponse(matches []match.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, NewMatchResponse(m))
	}
	return out
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status"`
}
