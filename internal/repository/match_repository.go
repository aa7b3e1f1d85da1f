package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tender-sync/internal/database"
	"tender-sync/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// Create inserts a match unless one already exists for the
	// (user, record) pair. Returns false when a pre-existing match was
	// left untouched.
	Create(ctx context.Context, m match.Match) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) error
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Create(ctx context.Context, m match.Match) (bool, error) {
	if m.UserID == uuid.Nil || m.RecordID == uuid.Nil {
		return false, errors.New("nil user or record id")
	}
	id := m.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	status := m.Status
	if status == "" {
		status = match.StatusNew
	}

	affected, err := r.db.Exec(ctx,
		`INSERT INTO matches (id, user_id, record_id, score, reasons, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (user_id, record_id) DO NOTHING`,
		id, m.UserID, m.RecordID, m.Score, m.Reasons, string(status), createdAt,
	)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, record_id, score, reasons, status, created_at FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *PostgresMatchRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]match.Match, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, record_id, score, reasons, status, created_at
		 FROM matches WHERE user_id = $1
		 ORDER BY score DESC, created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to match.Status) error {
	affected, err := r.db.Exec(ctx, `UPDATE matches SET status = $2 WHERE id = $1`, id, string(to))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	var status string
	err := row.Scan(&m.ID, &m.UserID, &m.RecordID, &m.Score, &m.Reasons, &status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	m.Status = match.Status(status)
	return m, nil
}
