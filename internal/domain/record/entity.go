package record

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a procurement opportunity.
type Status string

const (
	StatusActive  Status = "active"
	StatusAwarded Status = "awarded"
	StatusClosed  Status = "closed"
)

// StatusFromCode maps an upstream folder status code to the persisted
// status. Unknown and published-family codes count as active.
func StatusFromCode(code string) Status {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "ADJ":
		return StatusAwarded
	case "RES", "ANUL":
		return StatusClosed
	default:
		return StatusActive
	}
}

// Record is the canonical persisted representation of a procurement
// opportunity. ExternalID is unique among active records from the same
// source system; a re-fetched entry with a matching ExternalID updates
// the existing row instead of duplicating it.
type Record struct {
	ID                 uuid.UUID
	SourceSystem       string
	ExternalID         string
	Title              string
	Description        string
	IssuingBody        string
	Region             string
	ParentRegion       string // "" when the region has no known parent
	Category           string
	ClassificationCode string
	Budget             *float64
	PublicationDate    *time.Time
	Deadline           *time.Time
	Status             Status
	SourceURL          string
	IsActive           bool
	FetchedAt          time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
