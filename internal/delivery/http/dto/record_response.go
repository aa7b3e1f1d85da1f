package dto

import (
	"time"

	"github.com/google/uuid"

	"tender-sync/internal/domain/record"
)

type RecordResponse struct {
	ID                 uuid.UUID  `json:"id"`
	SourceSystem       string     `json:"source_system"`
	ExternalID         string     `json:"external_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	IssuingBody        string     `json:"issuing_body,omitempty"`
	Region             string     `json:"region,omitempty"`
	ParentRegion       string     `json:"parent_region,omitempty"`
	Category           string     `json:"category"`
	ClassificationCode string     `json:"classification_code,omitempty"`
	Budget             *float64   `json:"budget"`
	PublicationDate    *time.Time `json:"publication_date"`
	Deadline           *time.Time `json:"deadline"`
	Status             string     `json:"status"`
	SourceURL          string     `json:"source_url,omitempty"`
	IsActive           bool       `json:"is_active"`
	FetchedAt          time.Time  `json:"fetched_at"`
}

func NewRecordResponse(rec record.Record) RecordResponse {
	return RecordResponse{
		ID:                 rec.ID,
		SourceSystem:       rec.SourceSystem,
		ExternalID:         rec.ExternalID,
		Title:              rec.Title,
		Description:        rec.Description,
		IssuingBody:        rec.IssuingBody,
		Region:             rec.Region,
		ParentRegion:       rec.ParentRegion,
		Category:           rec.Category,
		ClassificationCode: rec.ClassificationCode,
		Budget:             rec.Budget,
		PublicationDate:    rec.PublicationDate,
		Deadline:           rec.Deadline,
		Status:             string(rec.Status),
		SourceURL:          rec.SourceURL,
		IsActive:           rec.IsActive,
		FetchedAt:          rec.FetchedAt,
	}
}

func NewRecordListResponse(recs []record.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, NewRecordResponse(rec))
	}
	return out
}
