package repository

import (
	"context"
	"time"

	"tender-sync/internal/database"

	"github.com/google/uuid"
)

// SyncRun is one row of the sync log.
type SyncRun struct {
	ID              uuid.UUID
	Status          string // running, succeeded, failed
	StartedAt       time.Time
	FinishedAt      *time.Time
	EntriesFetched  int
	EntriesInScope  int
	RecordsInserted int
	RecordsUpdated  int
	RecordsSkipped  int
	MatchesCreated  int
	ErrorCount      int
	ErrorSample     []byte // JSON array, first errors only
	Message         string
}

// SyncRunResult carries the final counters written when a run ends.
type SyncRunResult struct {
	Status          string
	EntriesFetched  int
	EntriesInScope  int
	RecordsInserted int
	RecordsUpdated  int
	RecordsSkipped  int
	MatchesCreated  int
	ErrorCount      int
	ErrorSample     []byte
	Message         string
}

type SyncRunRepository interface {
	Create(ctx context.Context, startedAt time.Time) (uuid.UUID, error)
	Finish(ctx context.Context, id uuid.UUID, res SyncRunResult) error
	ListRecent(ctx context.Context, limit int) ([]SyncRun, error)
}

type PostgresSyncRunRepository struct {
	db database.DB
}

func NewPostgresSyncRunRepository(db database.DB) *PostgresSyncRunRepository {
	return &PostgresSyncRunRepository{db: db}
}

func (r *PostgresSyncRunRepository) Create(ctx context.Context, startedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO sync_runs (id, status, started_at) VALUES ($1, 'running', $2)`,
		id, startedAt,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresSyncRunRepository) Finish(ctx context.Context, id uuid.UUID, res SyncRunResult) error {
	if id == uuid.Nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE sync_runs SET
			status = $2, finished_at = $3, entries_fetched = $4, entries_in_scope = $5,
			records_inserted = $6, records_updated = $7, records_skipped = $8,
			matches_created = $9, error_count = $10, error_sample = $11, message = $12
		 WHERE id = $1`,
		id, res.Status, time.Now().UTC(), res.EntriesFetched, res.EntriesInScope,
		res.RecordsInserted, res.RecordsUpdated, res.RecordsSkipped,
		res.MatchesCreated, res.ErrorCount, res.ErrorSample, nullableText(res.Message),
	)
	return err
}

func (r *PostgresSyncRunRepository) ListRecent(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, status, started_at, finished_at, entries_fetched, entries_in_scope,
		        records_inserted, records_updated, records_skipped, matches_created,
		        error_count, COALESCE(error_sample, '[]'), COALESCE(message, '')
		 FROM sync_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SyncRun, 0)
	for rows.Next() {
		var run SyncRun
		if err := rows.Scan(
			&run.ID, &run.Status, &run.StartedAt, &run.FinishedAt,
			&run.EntriesFetched, &run.EntriesInScope,
			&run.RecordsInserted, &run.RecordsUpdated, &run.RecordsSkipped,
			&run.MatchesCreated, &run.ErrorCount, &run.ErrorSample, &run.Message,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
