package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"tender-sync/internal/domain/match"
	"tender-sync/internal/domain/record"
	"tender-sync/internal/feed"
	"tender-sync/internal/geo"
	"tender-sync/internal/repository"

	"github.com/google/uuid"
)

// ErrSyncAlreadyRunning reports that a run was requested while one is in
// flight. The request is a no-op, not a queued run.
var ErrSyncAlreadyRunning = errors.New("sync already running")

const errorSampleSize = 10

// EntryFetcher fetches and parses the upstream feed.
type EntryFetcher interface {
	Fetch(ctx context.Context) ([]feed.RawEntry, error)
}

// Matcher runs a matching pass over freshly imported records.
type Matcher interface {
	MatchAll(ctx context.Context, recs []record.Record) (match.Summary, error)
}

// EntryError is one entry's processing failure. Collected, never fatal
// to the batch.
type EntryError struct {
	ExternalID string `json:"externalId"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Summary is the outcome of one sync run.
type Summary struct {
	RunID           uuid.UUID
	EntriesFetched  int
	EntriesInScope  int
	RecordsInserted int
	RecordsUpdated  int
	RecordsSkipped  int
	MatchesCreated  int
	UsersMatched    int
	MatchesByUser   map[uuid.UUID]int
	Errors          []EntryError
	Duration        time.Duration
}

// Syncer drives one full pipeline cycle: fetch, filter, transform,
// reconcile against stored records, then score the touched records
// against subscribers. All collaborators are injected; nothing here
// reaches for shared process state.
type Syncer struct {
	fetcher     EntryFetcher
	records     repository.RecordRepository
	rawEntries  repository.RawEntryRepository
	syncRuns    repository.SyncRunRepository
	subscribers repository.SubscriberRepository
	matcher     Matcher

	sourceSystem string
	sector       *SectorFilter
	staleness    time.Duration
	logger       *log.Logger

	running atomic.Bool
}

func NewSyncer(
	fetcher EntryFetcher,
	records repository.RecordRepository,
	rawEntries repository.RawEntryRepository,
	syncRuns repository.SyncRunRepository,
	subscribers repository.SubscriberRepository,
	matcher Matcher,
	sourceSystem string,
	cpvPrefix string,
	staleness time.Duration,
	logger *log.Logger,
) *Syncer {
	if staleness <= 0 {
		staleness = 24 * time.Hour
	}
	return &Syncer{
		fetcher:      fetcher,
		records:      records,
		rawEntries:   rawEntries,
		syncRuns:     syncRuns,
		subscribers:  subscribers,
		matcher:      matcher,
		sourceSystem: sourceSystem,
		sector:       NewSectorFilter(cpvPrefix),
		staleness:    staleness,
		logger:       logger,
	}
}

// Running reports whether a run is currently in flight.
func (s *Syncer) Running() bool {
	return s.running.Load()
}

// Run executes one sync cycle. At most one run is in flight per Syncer;
// a concurrent call returns ErrSyncAlreadyRunning without touching
// anything.
func (s *Syncer) Run(ctx context.Context) (Summary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Summary{}, ErrSyncAlreadyRunning
	}
	defer s.running.Store(false)

	started := time.Now().UTC()
	summary := Summary{}

	if s.syncRuns != nil {
		id, err := s.syncRuns.Create(ctx, started)
		if err != nil {
			s.logf("level=warn msg=\"sync run log create failed\" err=%q", err)
		} else {
			summary.RunID = id
		}
	}

	entries, err := s.fetcher.Fetch(ctx)
	if err != nil {
		summary.Duration = time.Since(started)
		s.finish(ctx, summary, "failed", err.Error())
		return summary, fmt.Errorf("fetch feed: %w", err)
	}
	summary.EntriesFetched = len(entries)

	regionFilter := s.regionsOfInterest(ctx)

	touched := make([]record.Record, 0, len(entries))
	for _, entry := range entries {
		externalID := feed.ExternalID(entry)

		if !s.sector.InScope(feed.ExtractClassificationCode(entry)) {
			continue
		}
		if !regionFilter.Keep(feed.ExtractRegion(entry)) {
			continue
		}
		summary.EntriesInScope++

		s.auditRaw(ctx, externalID, entry, started)

		rec := Transform(entry, s.sourceSystem, started)
		if rec == nil {
			summary.RecordsSkipped++
			continue
		}

		stored, created, err := s.reconcile(ctx, *rec, started)
		if err != nil {
			summary.Errors = append(summary.Errors, EntryError{
				ExternalID: externalID,
				Code:       "persist_failed",
				Message:    err.Error(),
			})
			s.logf("level=warn msg=\"entry persist failed\" external_id=%q err=%q", externalID, err)
			continue
		}
		switch {
		case created:
			summary.RecordsInserted++
			touched = append(touched, stored)
		case stored.ID != uuid.Nil:
			summary.RecordsUpdated++
			touched = append(touched, stored)
		default:
			summary.RecordsSkipped++
		}
	}

	if s.matcher != nil && len(touched) > 0 {
		matchSummary, err := s.matcher.MatchAll(ctx, touched)
		if err != nil {
			summary.Errors = append(summary.Errors, EntryError{
				Code:    "matching_failed",
				Message: err.Error(),
			})
			s.logf("level=warn msg=\"matching pass failed\" err=%q", err)
		} else {
			summary.MatchesCreated = matchSummary.TotalMatches
			summary.UsersMatched = matchSummary.UsersMatched
			summary.MatchesByUser = matchSummary.MatchesByUser
		}
	}

	summary.Duration = time.Since(started)
	s.finish(ctx, summary, "succeeded", "")

	s.logf("level=info msg=\"sync run done\" fetched=%d in_scope=%d inserted=%d updated=%d skipped=%d matches=%d errors=%d duration=%s",
		summary.EntriesFetched, summary.EntriesInScope, summary.RecordsInserted,
		summary.RecordsUpdated, summary.RecordsSkipped, summary.MatchesCreated,
		len(summary.Errors), summary.Duration)

	return summary, nil
}

// reconcile inserts a new record or updates the stored one. Records seen
// within the staleness window stay untouched; re-updating on every cycle
// would churn updated_at and re-trigger downstream consumers for no new
// information. Returns the record that should feed matching, with
// created=true when it is a fresh insert; a zero-ID record means the
// entry was skipped as fresh enough.
func (s *Syncer) reconcile(ctx context.Context, rec record.Record, now time.Time) (record.Record, bool, error) {
	existing, err := s.records.FindByExternalID(ctx, rec.SourceSystem, rec.ExternalID)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return record.Record{}, false, err
		}
		id, err := s.records.Insert(ctx, rec)
		if err != nil {
			return record.Record{}, false, err
		}
		rec.ID = id
		return rec, true, nil
	}

	if now.Sub(existing.UpdatedAt) < s.staleness {
		return record.Record{}, false, nil
	}

	rec.ID = existing.ID
	if err := s.records.Update(ctx, existing.ID, rec); err != nil {
		return record.Record{}, false, err
	}
	return rec, false, nil
}

// regionsOfInterest derives the active region filter from subscriber
// profiles. Failure to load profiles disables the filter for this run
// rather than aborting it.
func (s *Syncer) regionsOfInterest(ctx context.Context) *RegionFilter {
	if s.subscribers == nil {
		return NewRegionFilter(nil)
	}
	profiles, err := s.subscribers.ListMatchable(ctx)
	if err != nil {
		s.logf("level=warn msg=\"regions of interest unavailable, filter disabled\" err=%q", err)
		return NewRegionFilter(nil)
	}

	regions := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.PreferredRegion != "" {
			regions = append(regions, p.PreferredRegion)
		}
		regions = append(regions, p.Locations...)
	}
	for i, r := range regions {
		regions[i] = geo.Resolve(r)
	}
	return NewRegionFilter(regions)
}

// auditRaw persists the entry's native form for later inspection. Best
// effort: failure is logged and dropped, never surfaced to the run.
func (s *Syncer) auditRaw(ctx context.Context, externalID string, entry feed.RawEntry, fetchedAt time.Time) {
	if s.rawEntries == nil || externalID == "" {
		return
	}
	payload, err := json.Marshal(entry.ToMap())
	if err != nil {
		s.logf("level=warn msg=\"raw entry marshal failed\" external_id=%q err=%q", externalID, err)
		return
	}
	err = s.rawEntries.Insert(ctx, repository.RawEntryInsert{
		SourceSystem: s.sourceSystem,
		ExternalID:   externalID,
		FetchedAt:    fetchedAt,
		Payload:      payload,
	})
	if err != nil {
		s.logf("level=warn msg=\"raw entry audit failed\" external_id=%q err=%q", externalID, err)
	}
}

func (s *Syncer) finish(ctx context.Context, summary Summary, status, message string) {
	if s.syncRuns == nil || summary.RunID == uuid.Nil {
		return
	}

	sample := summary.Errors
	if len(sample) > errorSampleSize {
		sample = sample[:errorSampleSize]
	}
	var sampleJSON []byte
	if len(sample) > 0 {
		sampleJSON, _ = json.Marshal(sample)
	}

	err := s.syncRuns.Finish(ctx, summary.RunID, repository.SyncRunResult{
		Status:          status,
		EntriesFetched:  summary.EntriesFetched,
		EntriesInScope:  summary.EntriesInScope,
		RecordsInserted: summary.RecordsInserted,
		RecordsUpdated:  summary.RecordsUpdated,
		RecordsSkipped:  summary.RecordsSkipped,
		MatchesCreated:  summary.MatchesCreated,
		ErrorCount:      len(summary.Errors),
		ErrorSample:     sampleJSON,
		Message:         message,
	})
	if err != nil {
		s.logf("level=warn msg=\"sync run log update failed\" run_id=%s err=%q", summary.RunID, err)
	}
}

func (s *Syncer) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
