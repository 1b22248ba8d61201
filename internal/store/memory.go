package store

import (
	"fmt"
	"strings"
)

// slot holds the first record inserted under a key plus an ambiguity flag
// set when later inserts collide with it.
type slot struct {
	rec       *Record
	ambiguous bool
}

// Memory is an in-memory annotation store with O(1) lookups by rsID and by
// coordinate key. It is append-only during construction and must be fully
// built before lookups begin; after that it is safe for concurrent readers.
type Memory struct {
	byRSID  map[string]slot
	byCoord map[CoordKey]slot
	count   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byRSID:  make(map[string]slot),
		byCoord: make(map[CoordKey]slot),
	}
}

// Add indexes a record by its rsID (if set) and by its coordinate key (if
// set). On a key collision the first-inserted record is kept and the slot
// is flagged ambiguous.
func (m *Memory) Add(rec *Record) {
	m.count++
	if rsid := strings.ToLower(strings.TrimSpace(rec.RSID)); rsid != "" {
		if s, ok := m.byRSID[rsid]; ok {
			s.ambiguous = true
			m.byRSID[rsid] = s
		} else {
			m.byRSID[rsid] = slot{rec: rec}
		}
	}
	if rec.Chrom != "" && rec.Pos >= 1 {
		key := CoordKey{Chrom: rec.Chrom, Pos: rec.Pos}
		if s, ok := m.byCoord[key]; ok {
			s.ambiguous = true
			m.byCoord[key] = s
		} else {
			m.byCoord[key] = slot{rec: rec}
		}
	}
}

// Count returns the number of records added to the store.
func (m *Memory) Count() int {
	return m.count
}

// AmbiguousKeys returns how many index keys hold more than one record.
func (m *Memory) AmbiguousKeys() int {
	n := 0
	for _, s := range m.byRSID {
		if s.ambiguous {
			n++
		}
	}
	for _, s := range m.byCoord {
		if s.ambiguous {
			n++
		}
	}
	return n
}

// Validate returns an error if any index key holds more than one record.
// Callers that require a strictly unique reference store call this after
// loading and treat the error as fatal configuration.
func (m *Memory) Validate() error {
	if n := m.AmbiguousKeys(); n > 0 {
		return fmt.Errorf("annotation store has %d ambiguous index keys", n)
	}
	return nil
}

// ByRSID looks up a record by normalized rsID.
func (m *Memory) ByRSID(rsid string) (Hit, bool) {
	s, ok := m.byRSID[strings.ToLower(strings.TrimSpace(rsid))]
	if !ok {
		return Hit{}, false
	}
	return Hit{Record: s.rec, Ambiguous: s.ambiguous}, true
}

// ByCoordinate looks up a record by (chrom, pos), allele-agnostic.
func (m *Memory) ByCoordinate(chrom string, pos int64) (Hit, bool) {
	s, ok := m.byCoord[CoordKey{Chrom: chrom, Pos: pos}]
	if !ok {
		return Hit{}, false
	}
	return Hit{Record: s.rec, Ambiguous: s.ambiguous}, true
}
