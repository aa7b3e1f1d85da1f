package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"tender-sync/internal/database"

	"github.com/google/uuid"
)

// RawEntryInsert is one audit row: the entry as fetched, keyed by
// (source system, external id, fetch time).
type RawEntryInsert struct {
	SourceSystem string
	ExternalID   string
	FetchedAt    time.Time
	Payload      []byte
}

// RawEntryRepository persists fetched entries verbatim for audit and
// debugging. Callers treat failures as best-effort.
type RawEntryRepository interface {
	Insert(ctx context.Context, in RawEntryInsert) error
}

type PostgresRawEntryRepository struct {
	db database.DB
}

func NewPostgresRawEntryRepository(db database.DB) *PostgresRawEntryRepository {
	return &PostgresRawEntryRepository{db: db}
}

func (r *PostgresRawEntryRepository) Insert(ctx context.Context, in RawEntryInsert) error {
	if strings.TrimSpace(in.ExternalID) == "" {
		return errors.New("empty external id")
	}
	fetchedAt := in.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO raw_entries (id, source_system, external_id, fetched_at, payload)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (source_system, external_id, fetched_at) DO NOTHING`,
		uuid.New(), in.SourceSystem, in.ExternalID, fetchedAt, in.Payload,
	)
	return err
}
