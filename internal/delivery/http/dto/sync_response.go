package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tender-sync/internal/pipeline"
	"tender-sync/internal/repository"
)

type SyncSummaryResponse struct {
	RunID           uuid.UUID            `json:"run_id,omitempty"`
	EntriesFetched  int                  `json:"entries_fetched"`
	EntriesInScope  int                  `json:"entries_in_scope"`
	RecordsInserted int                  `json:"records_inserted"`
	RecordsUpdated  int                  `json:"records_updated"`
	RecordsSkipped  int                  `json:"records_skipped"`
	MatchesCreated  int                  `json:"matches_created"`
	UsersMatched    int                  `json:"users_matched"`
	Errors          []pipeline.EntryError `json:"errors,omitempty"`
	DurationMs      int64                `json:"duration_ms"`
}

func NewSyncSummaryResponse(s pipeline.Summary) SyncSummaryResponse {
	return SyncSummaryResponse{
		RunID:           s.RunID,
		EntriesFetched:  s.EntriesFetched,
		EntriesInScope:  s.EntriesInScope,
		RecordsInserted: s.RecordsInserted,
		RecordsUpdated:  s.RecordsUpdated,
		RecordsSkipped:  s.RecordsSkipped,
		MatchesCreated:  s.MatchesCreated,
		UsersMatched:    s.UsersMatched,
		Errors:          s.Errors,
		DurationMs:      s.Duration.Milliseconds(),
	}
}

type SyncRunResponse struct {
	ID              uuid.UUID       `json:"id"`
	Status          string          `json:"status"`
	StartedAt       time.Time       `json:"started_at"`
	FinishedAt      *time.Time      `json:"finished_at"`
	EntriesFetched  int             `json:"entries_fetched"`
	EntriesInScope  int             `json:"entries_in_scope"`
	RecordsInserted int             `json:"records_inserted"`
	RecordsUpdated  int             `json:"records_updated"`
	RecordsSkipped  int             `json:"records_skipped"`
	MatchesCreated  int             `json:"matches_created"`
	ErrorCount      int             `json:"error_count"`
	ErrorSample     json.RawMessage `json:"error_sample,omitempty"`
	Message         string          `json:"message,omitempty"`
}

func NewSyncRunResponse(run repository.SyncRun) SyncRunResponse {
	return SyncRunResponse{
		ID:              run.ID,
		Status:          run.Status,
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
		EntriesFetched:  run.EntriesFetched,
		EntriesInScope:  run.EntriesInScope,
		RecordsInserted: run.RecordsInserted,
		RecordsUpdated:  run.RecordsUpdated,
		RecordsSkipped:  run.RecordsSkipped,
		MatchesCreated:  run.MatchesCreated,
		ErrorCount:      run.ErrorCount,
		ErrorSample:     json.RawMessage(run.ErrorSample),
		Message:         run.Message,
	}
}

func NewSyncRunListResponse(runs []repository.SyncRun) []SyncRunResponse {
	out := make([]SyncRunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, NewSyncRunResponse(run))
	}
	return out
}
