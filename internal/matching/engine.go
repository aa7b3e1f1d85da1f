package matching

import (
	"fmt"
	"strings"
	"time"

	"tender-sync/internal/geo"
)

// MatchThreshold is the minimum score that creates a Match.
const MatchThreshold = 60

// RecordInput is the scoring-relevant slice of a persisted record.
type RecordInput struct {
	Region   string
	Title    string
	Category string
	Budget   *float64
	IsActive bool
	Deadline *time.Time
}

// ProfileInput is the scoring-relevant slice of a subscriber profile.
type ProfileInput struct {
	PreferredRegion string
	Locations       []string
	BudgetMin       *float64
	BudgetMax       *float64
	Sectors         []string
}

// Result carries the final score and the ordered per-signal reasons that
// produced it.
type Result struct {
	Score   int
	Reasons []string
}

// Score computes the 0-100 relevance between a record and a subscriber
// from four additive signals: region (max 40), budget (max 30), sector
// (max 20) and recency/urgency (max 10). The sum is clamped to 100. Equal
// scores are legitimate; no tie-breaking happens here.
func Score(rec RecordInput, prof ProfileInput, now time.Time) Result {
	total := 0
	reasons := make([]string, 0, 4)

	pts, reason := scoreRegion(rec, prof)
	total += pts
	reasons = append(reasons, reason)

	pts, reason = scoreBudget(rec, prof)
	total += pts
	reasons = append(reasons, reason)

	pts, reason = scoreSector(rec, prof)
	total += pts
	reasons = append(reasons, reason)

	pts, reason = scoreRecency(rec, now)
	total += pts
	reasons = append(reasons, reason)

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return Result{Score: total, Reasons: reasons}
}

func scoreRegion(rec RecordInput, prof ProfileInput) (int, string) {
	recRegion := geo.Normalize(geo.Resolve(rec.Region))
	if recRegion != "" {
		if recRegion == geo.Normalize(geo.Resolve(prof.PreferredRegion)) {
			return 40, fmt.Sprintf("region matches preferred region %s (+40)", rec.Region)
		}
		for _, loc := range prof.Locations {
			if recRegion == geo.Normalize(geo.Resolve(loc)) {
				return 40, fmt.Sprintf("region %s is in subscriber locations (+40)", rec.Region)
			}
		}
	}
	// non-exact still carries a weak nationwide signal
	return 10, "region outside declared areas, nationwide base (+10)"
}

func scoreBudget(rec RecordInput, prof ProfileInput) (int, string) {
	if rec.Budget == nil {
		return 10, "record has no budget (+10)"
	}
	if prof.BudgetMin == nil && prof.BudgetMax == nil {
		return 15, "subscriber declares no budget range (+15)"
	}

	budget := *rec.Budget
	min := 0.0
	if prof.BudgetMin != nil {
		min = *prof.BudgetMin
	}
	if budget >= min && (prof.BudgetMax == nil || budget <= *prof.BudgetMax) {
		return 30, "budget within declared range (+30)"
	}
	if budget >= min*0.5 && (prof.BudgetMax == nil || budget <= *prof.BudgetMax*2) {
		return 20, "budget near declared range (+20)"
	}
	return 5, "budget outside declared range (+5)"
}

// sectorKeywords maps a declared sector label to the keywords searched in
// a record's title and derived category. Spanish and English forms are
// folded so either side of the comparison can carry accents.
var sectorKeywords = map[string][]string{
	"residential building": {"building", "housing", "residential", "vivienda", "residencial", "edificio"},
	"civil engineering":    {"civil", "carretera", "road", "puente", "bridge", "ferroviaria"},
	"renovation":           {"renovation", "reforma", "rehabilitacion", "completion"},
	"electrical":           {"electrical", "electrica", "instalacion"},
	"demolition":           {"demolition", "demolicion", "derribo", "site preparation"},
}

func scoreSector(rec RecordInput, prof ProfileInput) (int, string) {
	if len(prof.Sectors) == 0 {
		return 15, "subscriber declares no sectors (+15)"
	}

	haystack := geo.Normalize(rec.Title + " " + rec.Category)
	for _, sector := range prof.Sectors {
		keywords, ok := sectorKeywords[geo.Normalize(sector)]
		if !ok {
			// unmapped sector labels match on their own name
			keywords = []string{sector}
		}
		for _, kw := range keywords {
			kw = geo.Normalize(kw)
			if kw != "" && strings.Contains(haystack, kw) {
				return 20, fmt.Sprintf("sector %s matches record (+20)", sector)
			}
		}
	}
	return 10, "declared sectors do not match record (+10)"
}

func scoreRecency(rec RecordInput, now time.Time) (int, string) {
	pts := 0
	if rec.IsActive {
		pts += 5
	}
	if rec.Deadline != nil {
		days := rec.Deadline.Sub(now).Hours() / 24
		switch {
		case days > 15:
			pts += 5
		case days >= 7:
			pts += 3
		}
	}
	return pts, fmt.Sprintf("recency and deadline urgency (+%d)", pts)
}
