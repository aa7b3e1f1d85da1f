package match

import (
	"time"

	"github.com/google/uuid"
)

// Status is the notification lifecycle of a match. Transitions only move
// forward: new → viewed → notified, never reverted.
type Status string

const (
	StatusNew      Status = "new"
	StatusViewed   Status = "viewed"
	StatusNotified Status = "notified"
)

var statusRank = map[Status]int{
	StatusNew:      0,
	StatusViewed:   1,
	StatusNotified: 2,
}

// CanTransition reports whether from → to is a legal forward move.
func CanTransition(from, to Status) bool {
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr > fr
}

// Summary aggregates one matching pass over a batch of records.
type Summary struct {
	TotalMatches  int
	UsersMatched  int
	MatchesByUser map[uuid.UUID]int
}

// Match is a scored association between one subscriber and one record.
// At most one exists per (UserID, RecordID); creation is a no-op when one
// is already there.
type Match struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RecordID  uuid.UUID
	Score     int
	Reasons   []string
	Status    Status
	CreatedAt time.Time
}
