package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tender-sync/internal/database"
	"tender-sync/internal/domain/record"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRecordNotFound = errors.New("record not found")

type RecordFilter struct {
	Region    string
	Status    string
	MinBudget *float64
	Limit     int
	Offset    int
}

type RecordRepository interface {
	FindByExternalID(ctx context.Context, sourceSystem, externalID string) (record.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (record.Record, error)
	Insert(ctx context.Context, rec record.Record) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, rec record.Record) error
	List(ctx context.Context, f RecordFilter) ([]record.Record, error)
}

type PostgresRecordRepository struct {
	db database.DB
}

func NewPostgresRecordRepository(db database.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db}
}

const recordColumns = `id, source_system, external_id,
	COALESCE(title, ''), COALESCE(description, ''), COALESCE(issuing_body, ''),
	COALESCE(region, ''), COALESCE(parent_region, ''), COALESCE(category, ''),
	COALESCE(classification_code, ''), budget, publication_date, deadline,
	status, COALESCE(source_url, ''), is_active, fetched_at, created_at, updated_at`

func (r *PostgresRecordRepository) FindByExternalID(ctx context.Context, sourceSystem, externalID string) (record.Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM records WHERE source_system = $1 AND external_id = $2 LIMIT 1`,
		sourceSystem, externalID,
	)
	return scanRecord(row)
}

func (r *PostgresRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (record.Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM records WHERE id = $1`, id)
	return scanRecord(row)
}

func (r *PostgresRecordRepository) Insert(ctx context.Context, rec record.Record) (uuid.UUID, error) {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO records (
			id, source_system, external_id, title, description, issuing_body,
			region, parent_region, category, classification_code, budget,
			publication_date, deadline, status, source_url, is_active,
			fetched_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		id, rec.SourceSystem, rec.ExternalID,
		nullableText(rec.Title), nullableText(rec.Description), nullableText(rec.IssuingBody),
		nullableText(rec.Region), nullableText(rec.ParentRegion), nullableText(rec.Category),
		nullableText(rec.ClassificationCode), rec.Budget,
		rec.PublicationDate, rec.Deadline, string(rec.Status), nullableText(rec.SourceURL),
		rec.IsActive, rec.FetchedAt, now, now,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresRecordRepository) Update(ctx context.Context, id uuid.UUID, rec record.Record) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE records SET
			title = $2, description = $3, issuing_body = $4, region = $5,
			parent_region = $6, category = $7, classification_code = $8,
			budget = $9, publication_date = $10, deadline = $11, status = $12,
			source_url = $13, is_active = $14, fetched_at = $15, updated_at = $16
		 WHERE id = $1`,
		id,
		nullableText(rec.Title), nullableText(rec.Description), nullableText(rec.IssuingBody),
		nullableText(rec.Region), nullableText(rec.ParentRegion), nullableText(rec.Category),
		nullableText(rec.ClassificationCode), rec.Budget, rec.PublicationDate, rec.Deadline,
		string(rec.Status), nullableText(rec.SourceURL), rec.IsActive, rec.FetchedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *PostgresRecordRepository) List(ctx context.Context, f RecordFilter) ([]record.Record, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if strings.TrimSpace(f.Region) != "" {
		where = append(where, "LOWER(region) = LOWER("+arg(strings.TrimSpace(f.Region))+")")
	}
	if strings.TrimSpace(f.Status) != "" {
		where = append(where, "status = "+arg(strings.TrimSpace(f.Status)))
	}
	if f.MinBudget != nil {
		where = append(where, "budget >= "+arg(*f.MinBudget))
	}

	query := `SELECT ` + recordColumns + ` FROM records WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY publication_date DESC NULLS LAST LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]record.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRecord(row database.Row) (record.Record, error) {
	var rec record.Record
	var status string
	err := row.Scan(
		&rec.ID, &rec.SourceSystem, &rec.ExternalID,
		&rec.Title, &rec.Description, &rec.IssuingBody,
		&rec.Region, &rec.ParentRegion, &rec.Category,
		&rec.ClassificationCode, &rec.Budget, &rec.PublicationDate, &rec.Deadline,
		&status, &rec.SourceURL, &rec.IsActive, &rec.FetchedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return record.Record{}, ErrRecordNotFound
		}
		return record.Record{}, err
	}
	rec.Status = record.Status(status)
	return rec, nil
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
