package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tender-sync/internal/domain/match"
	"tender-sync/internal/domain/record"
	"tender-sync/internal/domain/subscriber"
	"tender-sync/internal/matching"
	"tender-sync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrInvalidTransition = errors.New("invalid match status transition")
)

// MatchUsecase scores imported records against subscriber profiles and
// owns the match lifecycle afterwards.
type MatchUsecase struct {
	subscribers repository.SubscriberRepository
	matches     repository.MatchRepository
	logger      *log.Logger
}

func NewMatchUsecase(
	subscribers repository.SubscriberRepository,
	matches repository.MatchRepository,
	logger *log.Logger,
) *MatchUsecase {
	return &MatchUsecase{subscribers: subscribers, matches: matches, logger: logger}
}

// MatchAll scores every given record against every matchable subscriber
// and creates a match for each pair at or above the threshold. Candidate
// generation is deliberately wide: scoring, not filtering, ranks region
// fit, so subscribers outside a record's region still surface strong
// budget and sector matches. A pair that already has a match counts as
// skipped, not created.
func (u *MatchUsecase) MatchAll(ctx context.Context, recs []record.Record) (match.Summary, error) {
	summary := match.Summary{MatchesByUser: make(map[uuid.UUID]int)}
	if len(recs) == 0 {
		return summary, nil
	}

	profiles, err := u.subscribers.ListMatchable(ctx)
	if err != nil {
		return summary, fmt.Errorf("list matchable subscribers: %w", err)
	}
	if len(profiles) == 0 {
		return summary, nil
	}

	now := time.Now().UTC()
	for _, rec := range recs {
		if rec.ID == uuid.Nil {
			continue
		}
		recInput := recordInput(rec)

		for _, prof := range profiles {
			if !prof.Matchable() {
				continue
			}
			result := matching.Score(recInput, profileInput(prof), now)
			if result.Score < matching.MatchThreshold {
				continue
			}

			created, err := u.matches.Create(ctx, match.Match{
				UserID:   prof.UserID,
				RecordID: rec.ID,
				Score:    result.Score,
				Reasons:  result.Reasons,
				Status:   match.StatusNew,
			})
			if err != nil {
				if u.logger != nil {
					u.logger.Printf("level=warn msg=\"match create failed\" user_id=%s record_id=%s err=%q",
						prof.UserID, rec.ID, err)
				}
				continue
			}
			if !created {
				continue
			}
			summary.TotalMatches++
			summary.MatchesByUser[prof.UserID]++
		}
	}
	summary.UsersMatched = len(summary.MatchesByUser)

	if u.logger != nil {
		u.logger.Printf("level=info msg=\"matching pass done\" records=%d total_matches=%d users_matched=%d",
			len(recs), summary.TotalMatches, summary.UsersMatched)
	}
	return summary, nil
}

// ListForUser returns a subscriber's matches ordered best first.
func (u *MatchUsecase) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	return u.matches.ListByUser(ctx, userID, limit, offset)
}

// UpdateStatus moves a match forward in its lifecycle. Backward moves and
// unknown states are rejected.
func (u *MatchUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) (match.Match, error) {
	existing, err := u.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}

	if !match.CanTransition(existing.Status, to) {
		return match.Match{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, to)
	}
	if err := u.matches.UpdateStatus(ctx, id, to); err != nil {
		return match.Match{}, err
	}
	existing.Status = to
	return existing, nil
}

func recordInput(rec record.Record) matching.RecordInput {
	return matching.RecordInput{
		Region:   rec.Region,
		Title:    rec.Title,
		Category: rec.Category,
		Budget:   rec.Budget,
		IsActive: rec.IsActive,
		Deadline: rec.Deadline,
	}
}

func profileInput(p subscriber.Profile) matching.ProfileInput {
	return matching.ProfileInput{
		PreferredRegion: p.PreferredRegion,
		Locations:       p.Locations,
		BudgetMin:       p.BudgetMin,
		BudgetMax:       p.BudgetMax,
		Sectors:         p.Sectors,
	}
}
