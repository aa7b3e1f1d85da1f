package pipeline

import (
	"strings"

	"tender-sync/internal/geo"
)

// SectorFilter keeps entries whose classification code falls under the
// configured CPV prefix. An entry with no classification code at all is
// out of scope; scope is decided on classification alone, never on free
// text.
type SectorFilter struct {
	prefix string
}

func NewSectorFilter(cpvPrefix string) *SectorFilter {
	return &SectorFilter{prefix: strings.TrimSpace(cpvPrefix)}
}

// InScope reports whether the classification code belongs to the
// configured sector.
func (f *SectorFilter) InScope(classificationCode string) bool {
	code := strings.TrimSpace(classificationCode)
	if code == "" {
		return false
	}
	if f == nil || f.prefix == "" {
		return true
	}
	return strings.HasPrefix(code, f.prefix)
}

// RegionFilter keeps entries whose resolved region is one that at least
// one subscriber cares about. Comparison happens on normalized names so
// accents and casing never split a region in two.
type RegionFilter struct {
	wanted map[string]bool
}

// NewRegionFilter builds a filter from the regions subscribers declared.
// An empty list disables filtering: every resolved region passes.
func NewRegionFilter(regions []string) *RegionFilter {
	return &RegionFilter{wanted: geo.NormalizeSet(regions)}
}

// Keep reports whether an entry in the given region should be processed.
// When no regions were supplied the stage is disabled and everything
// passes. With an active set, entries with no resolvable region never
// pass: binary membership, not ranking.
func (f *RegionFilter) Keep(region string) bool {
	if f == nil || len(f.wanted) == 0 {
		return true
	}
	if region == "" {
		return false
	}
	return f.wanted[geo.Normalize(region)]
}
