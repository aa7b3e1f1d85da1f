package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tender-sync/internal/domain/match"
	"tender-sync/internal/domain/record"
	"tender-sync/internal/domain/subscriber"
	"tender-sync/internal/repository"

	"github.com/google/uuid"
)

type fakeSubscriberRepo struct {
	profiles []subscriber.Profile
}

func (r *fakeSubscriberRepo) ListMatchable(ctx context.Context) ([]subscriber.Profile, error) {
	return r.profiles, nil
}

type fakeMatchRepo struct {
	byID    map[uuid.UUID]match.Match
	byPair  map[string]uuid.UUID
	updates []match.Status
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{byID: make(map[uuid.UUID]match.Match), byPair: make(map[string]uuid.UUID)}
}

func (r *fakeMatchRepo) Create(ctx context.Context, m match.Match) (bool, error) {
	key := m.UserID.String() + "/" + m.RecordID.String()
	if _, ok := r.byPair[key]; ok {
		return false, nil
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	r.byID[m.ID] = m
	r.byPair[key] = m.ID
	return true, nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	m, ok := r.byID[id]
	if !ok {
		return match.Match{}, repository.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) error {
	m, ok := r.byID[id]
	if !ok {
		return repository.ErrMatchNotFound
	}
	m.Status = to
	r.byID[id] = m
	r.updates = append(r.updates, to)
	return nil
}

func f64(v float64) *float64 { return &v }

// A Madrid record with no budget against a Madrid subscriber with a
// declared but non-matching sector scores exactly 40+10+10+0 = 60.
func thresholdRecord() record.Record {
	return record.Record{
		ID:       uuid.New(),
		Region:   "Madrid",
		Title:    "Suministro de material de oficina",
		Category: "Other works",
		IsActive: false,
	}
}

func thresholdProfile() subscriber.Profile {
	return subscriber.Profile{
		UserID:              uuid.New(),
		PreferredRegion:     "Madrid",
		Sectors:             []string{"civil engineering"},
		SubscriptionStatus:  "active",
		OnboardingCompleted: true,
	}
}

func TestMatchAllCreatesAtThreshold(t *testing.T) {
	matches := newFakeMatchRepo()
	prof := thresholdProfile()
	u := NewMatchUsecase(&fakeSubscriberRepo{profiles: []subscriber.Profile{prof}}, matches, nil)

	summary, err := u.MatchAll(context.Background(), []record.Record{thresholdRecord()})
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	if summary.TotalMatches != 1 || summary.UsersMatched != 1 {
		t.Fatalf("summary = %+v, want one match at score 60", summary)
	}
	if got := summary.MatchesByUser[prof.UserID]; got != 1 {
		t.Errorf("MatchesByUser = %d", got)
	}
	for _, m := range matches.byID {
		if m.Score != 60 {
			t.Errorf("stored score = %d, want exactly the threshold", m.Score)
		}
		if m.Status != match.StatusNew {
			t.Errorf("stored status = %q", m.Status)
		}
		if len(m.Reasons) != 4 {
			t.Errorf("reasons = %v, want one per signal", m.Reasons)
		}
	}
}

func TestMatchAllSkipsBelowThreshold(t *testing.T) {
	// 10 (other region) + 30 (budget in range) + 15 (no sectors) + 3
	// (deadline within two weeks, inactive) = 58.
	deadline := time.Now().UTC().Add(10 * 24 * time.Hour)
	rec := record.Record{
		ID:       uuid.New(),
		Region:   "Sevilla",
		Title:    "Obras varias",
		Budget:   f64(100000),
		IsActive: false,
		Deadline: &deadline,
	}
	prof := subscriber.Profile{
		UserID:              uuid.New(),
		PreferredRegion:     "Madrid",
		BudgetMin:           f64(50000),
		BudgetMax:           f64(200000),
		SubscriptionStatus:  "active",
		OnboardingCompleted: true,
	}

	matches := newFakeMatchRepo()
	u := NewMatchUsecase(&fakeSubscriberRepo{profiles: []subscriber.Profile{prof}}, matches, nil)

	summary, err := u.MatchAll(context.Background(), []record.Record{rec})
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	if summary.TotalMatches != 0 || len(matches.byID) != 0 {
		t.Errorf("a score of 58 must not create a match, got %+v", summary)
	}
}

func TestMatchAllDeduplicatesPairs(t *testing.T) {
	matches := newFakeMatchRepo()
	rec := thresholdRecord()
	u := NewMatchUsecase(&fakeSubscriberRepo{profiles: []subscriber.Profile{thresholdProfile()}}, matches, nil)

	if _, err := u.MatchAll(context.Background(), []record.Record{rec}); err != nil {
		t.Fatalf("first MatchAll: %v", err)
	}
	summary, err := u.MatchAll(context.Background(), []record.Record{rec})
	if err != nil {
		t.Fatalf("second MatchAll: %v", err)
	}
	if summary.TotalMatches != 0 {
		t.Errorf("re-scoring an existing pair created a duplicate: %+v", summary)
	}
	if len(matches.byID) != 1 {
		t.Errorf("stored matches = %d, want 1", len(matches.byID))
	}
}

func TestMatchAllSkipsUnsavedRecords(t *testing.T) {
	matches := newFakeMatchRepo()
	rec := thresholdRecord()
	rec.ID = uuid.Nil
	u := NewMatchUsecase(&fakeSubscriberRepo{profiles: []subscriber.Profile{thresholdProfile()}}, matches, nil)

	summary, err := u.MatchAll(context.Background(), []record.Record{rec})
	if err != nil {
		t.Fatalf("MatchAll: %v", err)
	}
	if summary.TotalMatches != 0 {
		t.Errorf("matched a record that was never persisted")
	}
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	matches := newFakeMatchRepo()
	created, err := matches.Create(context.Background(), match.Match{
		UserID: uuid.New(), RecordID: uuid.New(), Score: 80, Status: match.StatusNew,
	})
	if err != nil || !created {
		t.Fatalf("seed match: created=%v err=%v", created, err)
	}
	var id uuid.UUID
	for mid := range matches.byID {
		id = mid
	}

	u := NewMatchUsecase(&fakeSubscriberRepo{}, matches, nil)

	m, err := u.UpdateStatus(context.Background(), id, match.StatusViewed)
	if err != nil {
		t.Fatalf("UpdateStatus to viewed: %v", err)
	}
	if m.Status != match.StatusViewed {
		t.Errorf("status = %q", m.Status)
	}

	if _, err := u.UpdateStatus(context.Background(), id, match.StatusNew); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("backward transition err = %v, want ErrInvalidTransition", err)
	}

	if _, err := u.UpdateStatus(context.Background(), uuid.New(), match.StatusViewed); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("missing match err = %v, want ErrMatchNotFound", err)
	}
}
