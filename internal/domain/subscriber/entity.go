package subscriber

import "github.com/google/uuid"

// Subscription statuses eligible for matching.
var ActiveStatuses = map[string]bool{
	"active":   true,
	"trialing": true,
}

// Profile is the matching-relevant slice of a subscriber. Owned by the
// profile subsystem; the pipeline only reads it.
type Profile struct {
	UserID              uuid.UUID
	PreferredRegion     string
	Locations           []string
	BudgetMin           *float64
	BudgetMax           *float64
	Sectors             []string
	SubscriptionStatus  string
	OnboardingCompleted bool
}

// Matchable reports whether the subscriber should be considered as a
// match candidate at all.
func (p Profile) Matchable() bool {
	return p.OnboardingCompleted && ActiveStatuses[p.SubscriptionStatus]
}
