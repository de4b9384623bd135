package mood

import (
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrEmptyCatalog is returned when a selector is constructed without moods.
// An empty catalog is a startup configuration error and must prevent
// startup.
var ErrEmptyCatalog = errors.New("mood: catalog must not be empty")

// maxDraws bounds the rejection sampling loop. With distinct IDs the
// expected number of draws is n/(n-1); the bound only matters if a catalog
// carries duplicate IDs.
const maxDraws = 64

// Selector picks the next mood to show, never repeating the current one
// when the catalog allows it. State is explicit and owned by the caller
// rather than process-global, so tests can construct and Reset selectors
// freely.
type Selector struct {
	mu        sync.Mutex
	catalog   []Mood
	firstCall bool
	rng       *rand.Rand
}

// NewSelector validates and copies the catalog. The catalog is immutable
// after this point.
func NewSelector(catalog []Mood) (*Selector, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	cp := make([]Mood, len(catalog))
	copy(cp, catalog)
	return &Selector{
		catalog:   cp,
		firstCall: true,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}, nil
}

// Next returns the mood to show after current.
//
// The very first call returns the last catalog entry regardless of what
// current holds, and permanently clears the first-call flag (until Reset).
// A single-entry catalog always returns its one entry. Otherwise the result
// is drawn uniformly at random until it differs from current, so it is
// uniform over the n-1 non-current entries.
func (s *Selector) Next(current ID) Mood {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.firstCall {
		s.firstCall = false
		return s.catalog[len(s.catalog)-1]
	}
	if len(s.catalog) == 1 {
		return s.catalog[0]
	}

	for range maxDraws {
		m := s.catalog[s.rng.IntN(len(s.catalog))]
		if m.ID != current {
			return m
		}
	}

	// Duplicate-ID catalog pathology: fall back to the first entry that
	// differs, or give up and repeat.
	for _, m := range s.catalog {
		if m.ID != current {
			return m
		}
	}
	return s.catalog[0]
}

// Reset restores the first-call behavior.
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstCall = true
}

// Moods returns a copy of the catalog in order.
func (s *Selector) Moods() []Mood {
	cp := make([]Mood, len(s.catalog))
	copy(cp, s.catalog)
	return cp
}

// Lookup finds a mood by ID.
func (s *Selector) Lookup(id ID) (Mood, bool) {
	for _, m := range s.catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Mood{}, false
}
