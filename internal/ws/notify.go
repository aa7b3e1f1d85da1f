package ws

import (
	"encoding/json"
	"time"
)

// MatchesCreatedEvent tells connected clients that a sync run produced
// new matches and their match lists are worth refreshing.
type MatchesCreatedEvent struct {
	Type           string `json:"type"`
	MatchesCreated int    `json:"matchesCreated"`
	UsersMatched   int    `json:"usersMatched"`
	Timestamp      string `json:"timestamp"`
}

// NotifyMatchesCreated broadcasts a matches_created event. A nil hub or
// an empty run is a no-op.
func NotifyMatchesCreated(h *Hub, matchesCreated, usersMatched int) {
	if h == nil || matchesCreated <= 0 {
		return
	}

	evt := MatchesCreatedEvent{
		Type:           "matches_created",
		MatchesCreated: matchesCreated,
		UsersMatched:   usersMatched,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
