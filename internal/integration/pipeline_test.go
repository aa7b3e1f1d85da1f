package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tender-sync/internal/domain/match"
	"tender-sync/internal/domain/record"
	"tender-sync/internal/domain/subscriber"
	"tender-sync/internal/feed"
	"tender-sync/internal/pipeline"
	"tender-sync/internal/repository"
	"tender-sync/internal/usecase"

	"github.com/google/uuid"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>https://contrataciondelestado.test/licitaciones/3001</id>
    <title>Construcción de polideportivo municipal</title>
    <summary>Construcción de un polideportivo cubierto.</summary>
    <updated>2026-08-25T07:45:00Z</updated>
    <link href="https://contrataciondelestado.test/detalle/3001"/>
    <ContractFolderStatus>
      <ContractFolderID>EXP-2026-3001</ContractFolderID>
      <ContractFolderStatusCode>PUB</ContractFolderStatusCode>
      <ProcurementProject>
        <RequiredCommodityClassification>
          <ItemClassificationCode>45213150</ItemClassificationCode>
        </RequiredCommodityClassification>
        <BudgetAmount>
          <TotalAmount currencyID="EUR">300000</TotalAmount>
        </BudgetAmount>
        <RealizedLocation>
          <CountrySubentity>Madrid</CountrySubentity>
        </RealizedLocation>
      </ProcurementProject>
      <TenderingProcess>
        <TenderSubmissionDeadlinePeriod>
          <EndDate>%s</EndDate>
        </TenderSubmissionDeadlinePeriod>
      </TenderingProcess>
      <LocatedContractingParty>
        <Party>
          <PartyName>
            <Name>Ayuntamiento de Madrid</Name>
          </PartyName>
        </Party>
      </LocatedContractingParty>
    </ContractFolderStatus>
  </entry>
  <entry>
    <id>https://contrataciondelestado.test/licitaciones/3002</id>
    <title>Servicios de asesoría jurídica</title>
    <ContractFolderStatus>
      <ContractFolderID>EXP-2026-3002</ContractFolderID>
      <ProcurementProject>
        <RequiredCommodityClassification>
          <ItemClassificationCode>79100000</ItemClassificationCode>
        </RequiredCommodityClassification>
      </ProcurementProject>
    </ContractFolderStatus>
  </entry>
</feed>`

type memRecordRepo struct {
	byKey map[string]record.Record
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{byKey: make(map[string]record.Record)}
}

func (r *memRecordRepo) FindByExternalID(ctx context.Context, sourceSystem, externalID string) (record.Record, error) {
	rec, ok := r.byKey[sourceSystem+"/"+externalID]
	if !ok {
		return record.Record{}, repository.ErrRecordNotFound
	}
	return rec, nil
}

func (r *memRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (record.Record, error) {
	for _, rec := range r.byKey {
		if rec.ID == id {
			return rec, nil
		}
	}
	return record.Record{}, repository.ErrRecordNotFound
}

func (r *memRecordRepo) Insert(ctx context.Context, rec record.Record) (uuid.UUID, error) {
	rec.ID = uuid.New()
	rec.UpdatedAt = time.Now().UTC()
	r.byKey[rec.SourceSystem+"/"+rec.ExternalID] = rec
	return rec.ID, nil
}

func (r *memRecordRepo) Update(ctx context.Context, id uuid.UUID, rec record.Record) error {
	rec.ID = id
	rec.UpdatedAt = time.Now().UTC()
	r.byKey[rec.SourceSystem+"/"+rec.ExternalID] = rec
	return nil
}

func (r *memRecordRepo) List(ctx context.Context, f repository.RecordFilter) ([]record.Record, error) {
	out := make([]record.Record, 0, len(r.byKey))
	for _, rec := range r.byKey {
		out = append(out, rec)
	}
	return out, nil
}

type memMatchRepo struct {
	byPair map[string]match.Match
}

func newMemMatchRepo() *memMatchRepo {
	return &memMatchRepo{byPair: make(map[string]match.Match)}
}

func (r *memMatchRepo) Create(ctx context.Context, m match.Match) (bool, error) {
	key := m.UserID.String() + "/" + m.RecordID.String()
	if _, ok := r.byPair[key]; ok {
		return false, nil
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	r.byPair[key] = m
	return true, nil
}

func (r *memMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	for _, m := range r.byPair {
		if m.ID == id {
			return m, nil
		}
	}
	return match.Match{}, repository.ErrMatchNotFound
}

func (r *memMatchRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, m := range r.byPair {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMatchRepo) UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) error {
	for key, m := range r.byPair {
		if m.ID == id {
			m.Status = to
			r.byPair[key] = m
			return nil
		}
	}
	return repository.ErrMatchNotFound
}

type memSubscriberRepo struct {
	profiles []subscriber.Profile
}

func (r *memSubscriberRepo) ListMatchable(ctx context.Context) ([]subscriber.Profile, error) {
	return r.profiles, nil
}

func budget(v float64) *float64 { return &v }

// Full pass over a live feed server: fetch, filter, transform, persist
// and score. The Madrid construction entry lands a 95 for a Madrid
// subscriber with a fitting budget range and no declared sectors; the
// legal-services entry never makes it past the sector filter.
func TestPipelineEndToEnd(t *testing.T) {
	deadline := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprintf(w, feedTemplate, deadline)
	}))
	defer srv.Close()

	userID := uuid.New()
	subscribers := &memSubscriberRepo{profiles: []subscriber.Profile{{
		UserID:              userID,
		PreferredRegion:     "Madrid",
		BudgetMin:           budget(100000),
		BudgetMax:           budget(500000),
		SubscriptionStatus:  "active",
		OnboardingCompleted: true,
	}}}
	records := newMemRecordRepo()
	matches := newMemMatchRepo()

	matchUC := usecase.NewMatchUsecase(subscribers, matches, nil)
	fetcher := feed.NewFetcher(srv.URL, 5*time.Second, 0, nil)
	syncer := pipeline.NewSyncer(
		fetcher, records, nil, nil, subscribers, matchUC,
		"placsp", "45", 24*time.Hour, nil,
	)

	summary, err := syncer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.EntriesFetched != 2 || summary.EntriesInScope != 1 {
		t.Fatalf("fetched=%d in_scope=%d, want 2 fetched and 1 in scope", summary.EntriesFetched, summary.EntriesInScope)
	}
	if summary.RecordsInserted != 1 {
		t.Fatalf("RecordsInserted = %d", summary.RecordsInserted)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("entry errors: %v", summary.Errors)
	}

	rec, err := records.FindByExternalID(context.Background(), "placsp", "EXP-2026-3001")
	if err != nil {
		t.Fatalf("record not stored: %v", err)
	}
	if rec.Region != "Madrid" || rec.ParentRegion != "Comunidad de Madrid" {
		t.Errorf("region = %q parent = %q", rec.Region, rec.ParentRegion)
	}
	if rec.Category != "Building construction" {
		t.Errorf("category = %q", rec.Category)
	}
	if rec.Status != record.StatusActive || !rec.IsActive {
		t.Errorf("status = %q is_active = %v", rec.Status, rec.IsActive)
	}

	if summary.MatchesCreated != 1 || summary.UsersMatched != 1 {
		t.Fatalf("matches=%d users=%d, want 1/1", summary.MatchesCreated, summary.UsersMatched)
	}
	userMatches, err := matches.ListByUser(context.Background(), userID, 10, 0)
	if err != nil || len(userMatches) != 1 {
		t.Fatalf("user matches = %v err = %v", userMatches, err)
	}
	if got := userMatches[0].Score; got != 95 {
		t.Errorf("score = %d, want 95 (region 40 + budget 30 + sector 15 + recency 10)", got)
	}
	if userMatches[0].Status != match.StatusNew {
		t.Errorf("match status = %q", userMatches[0].Status)
	}

	// a second cycle within the staleness window changes nothing
	again, err := syncer.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if again.RecordsInserted != 0 || again.RecordsUpdated != 0 || again.MatchesCreated != 0 {
		t.Errorf("second run not idempotent: %+v", again)
	}
}
