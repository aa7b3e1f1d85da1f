package pipeline

import (
	"strings"
	"time"

	"tender-sync/internal/domain/record"
	"tender-sync/internal/feed"
	"tender-sync/internal/geo"
)

// categoryRule maps a classification code prefix to a work category
// label. Rules are checked in order, so more specific prefixes must come
// before the generic division they refine.
type categoryRule struct {
	prefix string
	label  string
}

var categoryRules = []categoryRule{
	{"4521", "Building construction"},
	{"4522", "Civil engineering works"},
	{"4523", "Road and highway construction"},
	{"4524", "Water projects"},
	{"4525", "Plants and industrial facilities"},
	{"4526", "Roofing and special trade works"},
	{"4531", "Electrical installation"},
	{"4532", "Insulation works"},
	{"4533", "Plumbing, heating and air conditioning"},
	{"4541", "Plastering works"},
	{"4542", "Joinery and carpentry"},
	{"4543", "Floor and wall covering"},
	{"4544", "Painting and glazing"},
	{"4511", "Demolition and site preparation"},
	{"4510", "Site preparation"},
	{"45", "Construction works"},
	{"71", "Architecture and engineering services"},
	{"79", "Business services"},
}

// CategoryFromCode derives the work category label from a classification
// code: first matching prefix wins. Unknown codes get the generic label.
func CategoryFromCode(code string) string {
	code = strings.TrimSpace(code)
	for _, rule := range categoryRules {
		if strings.HasPrefix(code, rule.prefix) {
			return rule.label
		}
	}
	return "Other works"
}

// Transform maps one feed entry into the persisted record shape. Returns
// nil when essential mapping fails: a transform miss skips one entry, it
// never aborts the batch.
func Transform(e feed.RawEntry, sourceSystem string, now time.Time) *record.Record {
	if e == nil {
		return nil
	}

	externalID := feed.ExternalID(e)
	title := e.Value("title")
	if externalID == "" || title == "" {
		return nil
	}

	fields := feed.Extract(e)

	rec := &record.Record{
		SourceSystem:       sourceSystem,
		ExternalID:         externalID,
		Title:              title,
		Description:        e.Value("summary"),
		IssuingBody:        fields.IssuingBody,
		Region:             fields.Region,
		ParentRegion:       geo.ParentRegion(fields.Region),
		Category:           CategoryFromCode(fields.ClassificationCode),
		ClassificationCode: fields.ClassificationCode,
		Budget:             fields.Budget,
		Deadline:           fields.Deadline,
		Status:             record.StatusFromCode(fields.StatusCode),
		SourceURL:          feed.SourceURL(e),
		FetchedAt:          now,
	}

	if pub := feed.PublicationDate(e); pub != nil {
		rec.PublicationDate = pub
	}
	rec.IsActive = rec.Status == record.StatusActive

	return rec
}
