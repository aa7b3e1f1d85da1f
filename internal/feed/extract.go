package feed

import (
	"strconv"
	"strings"
	"time"

	"tender-sync/internal/geo"
)

// StatusPublished is the upstream code assumed when an entry carries no
// explicit folder status.
const StatusPublished = "PUB"

// ExtractedFields holds everything derivable from one raw entry. Misses
// are zero values (empty string / nil pointer), never errors: one field
// failing to extract must not block the others.
type ExtractedFields struct {
	ClassificationCode string
	Region             string
	Budget             *float64
	Deadline           *time.Time
	IssuingBody        string
	StatusCode         string
}

// Extract derives all fields from a raw entry.
func Extract(e RawEntry) ExtractedFields {
	return ExtractedFields{
		ClassificationCode: ExtractClassificationCode(e),
		Region:             ExtractRegion(e),
		Budget:             ExtractBudget(e),
		Deadline:           ExtractDeadline(e),
		IssuingBody:        ExtractIssuingBody(e),
		StatusCode:         ExtractStatus(e),
	}
}

// ExtractClassificationCode returns the raw CPV code string, or "" when no
// classification is present. A repeated classification list contributes
// its first element.
func ExtractClassificationCode(e RawEntry) string {
	return e.Value("ContractFolderStatus", "ProcurementProject",
		"RequiredCommodityClassification", "ItemClassificationCode")
}

// ExtractRegion resolves the entry's province through a three-tier
// fallback, ordered by decreasing reliability:
//
//  1. the structured realized-location sub-path (subentity name, then
//     NUTS code),
//  2. a gazetteer substring scan over title+summary,
//  3. the same scan over the issuing-body name.
//
// The structured fields are inconsistently populated upstream, so the
// free-text tiers meaningfully raise recall. Returns "" when every tier
// misses.
func ExtractRegion(e RawEntry) string {
	if loc := e.First("ContractFolderStatus", "ProcurementProject", "RealizedLocation"); loc != nil {
		if name := loc.Value("CountrySubentity"); name != "" {
			return geo.Resolve(name)
		}
		if code := loc.Value("CountrySubentityCode"); code != "" {
			if province := geo.FromNUTS(code); province != "" {
				return province
			}
		}
	}

	if region := geo.FindInText(e.Value("title") + " " + e.Value("summary")); region != "" {
		return region
	}

	return geo.FindInText(ExtractIssuingBody(e))
}

// ExtractBudget returns the tender budget as a float, or nil on absence or
// parse failure. Comma decimal separators are tolerated.
func ExtractBudget(e RawEntry) *float64 {
	amount := e.First("ContractFolderStatus", "ProcurementProject", "BudgetAmount")
	if amount == nil {
		return nil
	}

	raw := amount.Value("TotalAmount")
	if raw == "" {
		raw = amount.Value("TaxExclusiveAmount")
	}
	if raw == "" {
		raw = amount.Value("EstimatedOverallContractAmount")
	}
	if raw == "" {
		return nil
	}

	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ExtractDeadline returns the tender submission deadline, or nil when
// absent or unparseable. A date-only EndDate combines with EndTime when
// one is given.
func ExtractDeadline(e RawEntry) *time.Time {
	period := e.First("ContractFolderStatus", "TenderingProcess", "TenderSubmissionDeadlinePeriod")
	if period == nil {
		return nil
	}

	endDate := period.Value("EndDate")
	if endDate == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, endDate); err == nil {
		return &t
	}

	layout := "2006-01-02"
	value := endDate
	if endTime := period.Value("EndTime"); endTime != "" {
		layout = "2006-01-02 15:04:05"
		value = endDate + " " + endTime
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// ExtractIssuingBody returns the contracting party name, or "" if absent.
func ExtractIssuingBody(e RawEntry) string {
	return e.Value("ContractFolderStatus", "LocatedContractingParty", "Party", "PartyName", "Name")
}

// ExtractStatus returns the folder status code, defaulting to the
// published code when the entry carries none.
func ExtractStatus(e RawEntry) string {
	if code := e.Value("ContractFolderStatus", "ContractFolderStatusCode"); code != "" {
		return code
	}
	return StatusPublished
}

// ExternalID returns the stable upstream identifier of an entry: the
// contract folder id when present, otherwise the Atom entry id.
func ExternalID(e RawEntry) string {
	if id := e.Value("ContractFolderStatus", "ContractFolderID"); id != "" {
		return id
	}
	return e.Value("id")
}

// SourceURL returns the entry's link target. The upstream encodes it as an
// attribute; attribute merging makes the lookup uniform.
func SourceURL(e RawEntry) string {
	return e.Value("link", "href")
}

// PublicationDate returns the entry's updated timestamp, or nil when
// absent or unparseable.
func PublicationDate(e RawEntry) *time.Time {
	raw := e.Value("updated")
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
