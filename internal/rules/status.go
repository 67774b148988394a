package rules

import "time"

// Provenance tells where an implementation-status set came from.
type Provenance string

const (
	// ProvenanceLive marks a status set fetched from the live source.
	ProvenanceLive Provenance = "live"
	// ProvenanceCached marks a status set read from the on-disk cache after
	// a live fetch failed or was not requested.
	ProvenanceCached Provenance = "cached"
)

// StatusSet is the set of rule codes believed implemented by the faster
// tool, tagged with its provenance. Read-only after construction.
type StatusSet struct {
	codes      map[string]struct{}
	provenance Provenance
	fetchedAt  time.Time
}

// NewStatusSet builds a StatusSet from a list of rule codes.
func NewStatusSet(codes []string, provenance Provenance, fetchedAt time.Time) *StatusSet {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return &StatusSet{codes: set, provenance: provenance, fetchedAt: fetchedAt}
}

// Contains reports whether the rule code is in the set.
func (s *StatusSet) Contains(code string) bool {
	if s == nil {
		return false
	}
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of codes in the set.
func (s *StatusSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.codes)
}

// Provenance returns the set's provenance tag.
func (s *StatusSet) Provenance() Provenance {
	return s.provenance
}

// FetchedAt returns when the set was obtained.
func (s *StatusSet) FetchedAt() time.Time {
	return s.fetchedAt
}
