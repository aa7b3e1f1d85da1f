package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tender-sync/internal/domain/record"
	"tender-sync/internal/geo"
	"tender-sync/internal/repository"

	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("record not found")

// RecordCache is the cache surface the record usecase needs. Implemented
// by the Redis cache; a nil cache disables caching entirely.
type RecordCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateRecords(ctx context.Context) error
}

type RecordUsecase struct {
	records repository.RecordRepository
	cache   RecordCache
	logger  *log.Logger
}

func NewRecordUsecase(records repository.RecordRepository, cache RecordCache, logger *log.Logger) *RecordUsecase {
	return &RecordUsecase{records: records, cache: cache, logger: logger}
}

// List returns records matching the filter, read through the cache.
// Cache failures degrade to a direct read.
func (u *RecordUsecase) List(ctx context.Context, f repository.RecordFilter) ([]record.Record, error) {
	key := listCacheKey(f)

	if u.cache != nil {
		var cached []record.Record
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	recs, err := u.records.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, recs, 0); err != nil && u.logger != nil {
			u.logger.Printf("level=warn msg=\"record list cache write failed\" key=%q err=%q", key, err)
		}
	}
	return recs, nil
}

func (u *RecordUsecase) GetByID(ctx context.Context, id uuid.UUID) (record.Record, error) {
	rec, err := u.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return record.Record{}, ErrRecordNotFound
		}
		return record.Record{}, err
	}
	return rec, nil
}

// InvalidateListings drops cached listings after a sync run changed the
// underlying records. Best effort.
func (u *RecordUsecase) InvalidateListings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateRecords(ctx); err != nil && u.logger != nil {
		u.logger.Printf("level=warn msg=\"record cache invalidation failed\" err=%q", err)
	}
}

func listCacheKey(f repository.RecordFilter) string {
	minBudget := 0.0
	if f.MinBudget != nil {
		minBudget = *f.MinBudget
	}
	return fmt.Sprintf("records:list:%s:%s:%g:%d:%d",
		geo.Normalize(f.Region), f.Status, minBudget, f.Limit, f.Offset)
}
