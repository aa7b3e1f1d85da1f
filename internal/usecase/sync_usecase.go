package usecase

import (
	"context"
	"log"

	"tender-sync/internal/pipeline"
	"tender-sync/internal/repository"
	"tender-sync/internal/ws"
)

// SyncUsecase fronts the pipeline for the delivery layer: it runs sync
// cycles and exposes the run log, and owns the after-run side effects
// (cache invalidation, websocket fan-out) that the pipeline itself stays
// ignorant of.
type SyncUsecase struct {
	syncer  *pipeline.Syncer
	runs    repository.SyncRunRepository
	records *RecordUsecase
	hub     *ws.Hub
	logger  *log.Logger
}

func NewSyncUsecase(
	syncer *pipeline.Syncer,
	runs repository.SyncRunRepository,
	records *RecordUsecase,
	hub *ws.Hub,
	logger *log.Logger,
) *SyncUsecase {
	return &SyncUsecase{syncer: syncer, runs: runs, records: records, hub: hub, logger: logger}
}

// Run executes one sync cycle. pipeline.ErrSyncAlreadyRunning passes
// through untouched so callers can map it to their own conflict
// semantics.
func (u *SyncUsecase) Run(ctx context.Context) (pipeline.Summary, error) {
	summary, err := u.syncer.Run(ctx)
	if err != nil {
		return summary, err
	}

	if summary.RecordsInserted > 0 || summary.RecordsUpdated > 0 {
		if u.records != nil {
			u.records.InvalidateListings(ctx)
		}
	}
	ws.NotifyMatchesCreated(u.hub, summary.MatchesCreated, summary.UsersMatched)

	return summary, nil
}

// Running reports whether a sync cycle is in flight.
func (u *SyncUsecase) Running() bool {
	return u.syncer.Running()
}

// ListRuns returns the most recent sync run log rows.
func (u *SyncUsecase) ListRuns(ctx context.Context, limit int) ([]repository.SyncRun, error) {
	return u.runs.ListRecent(ctx, limit)
}
