package repository

import (
	"context"

	"tender-sync/internal/database"
	"tender-sync/internal/domain/subscriber"
)

type SubscriberRepository interface {
	// ListMatchable returns the profiles eligible for match generation:
	// allow-listed subscription status and completed onboarding.
	ListMatchable(ctx context.Context) ([]subscriber.Profile, error)
}

type PostgresSubscriberRepository struct {
	db database.DB
}

func NewPostgresSubscriberRepository(db database.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

func (r *PostgresSubscriberRepository) ListMatchable(ctx context.Context) ([]subscriber.Profile, error) {
	statuses := make([]string, 0, len(subscriber.ActiveStatuses))
	for s := range subscriber.ActiveStatuses {
		statuses = append(statuses, s)
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, COALESCE(preferred_region, ''), COALESCE(locations, '{}'),
		        budget_min, budget_max, COALESCE(sectors, '{}'),
		        subscription_status, onboarding_completed
		 FROM subscriber_profiles
		 WHERE onboarding_completed AND subscription_status = ANY($1)`,
		statuses,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]subscriber.Profile, 0)
	for rows.Next() {
		var p subscriber.Profile
		if err := rows.Scan(
			&p.UserID, &p.PreferredRegion, &p.Locations,
			&p.BudgetMin, &p.BudgetMax, &p.Sectors,
			&p.SubscriptionStatus, &p.OnboardingCompleted,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
