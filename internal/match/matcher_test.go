package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-acmg/internal/store"
	"github.com/inodb/vibe-acmg/internal/variant"
)

func testStore(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory()
	m.Add(&store.Record{
		RSID: "rs202075563", Chrom: "13", Pos: 32332592, Ref: "T", Alt: "C",
		ClinicalSignificance: "Pathogenic",
		GeneSymbol:           "BRCA2",
	})
	m.Add(&store.Record{
		Chrom: "7", Pos: 117559590, Ref: "G", Alt: "A",
		ClinicalSignificance: "Likely benign",
		GeneSymbol:           "CFTR",
	})
	return m
}

func TestMatchByRSID(t *testing.T) {
	m := New(testStore(t))

	r, err := m.MatchOne(variant.Identity{RSID: "rs202075563"})
	require.NoError(t, err)
	assert.Equal(t, ProvenanceRSID, r.Provenance)
	require.NotNil(t, r.Record)
	assert.Equal(t, "BRCA2", r.Record.GeneSymbol)
}

func TestMatchByCoordinateFallback(t *testing.T) {
	m := New(testStore(t))

	// No rsID: coordinate pass fires, allele-agnostic
	r, err := m.MatchOne(variant.Identity{Chrom: "chr7", Pos: 117559590, Ref: "G", Alt: "T"})
	require.NoError(t, err)
	assert.Equal(t, ProvenanceCoordinate, r.Provenance)
	require.NotNil(t, r.Record)
	assert.Equal(t, "CFTR", r.Record.GeneSymbol)
}

func TestMatchPrecedenceRSIDWins(t *testing.T) {
	m := New(testStore(t))

	// Variant matches by both rsID and coordinates: provenance must be rsid
	// and exactly one result is emitted.
	v := variant.Identity{RSID: "rs202075563", Chrom: "13", Pos: 32332592, Ref: "T", Alt: "C"}
	r, err := m.MatchOne(v)
	require.NoError(t, err)
	assert.Equal(t, ProvenanceRSID, r.Provenance)

	results, invalid := m.Match([]variant.Identity{v})
	assert.Zero(t, invalid)
	require.Len(t, results, 1)
	assert.Equal(t, ProvenanceRSID, results[0].Provenance)
}

func TestMatchUnknownRSIDFallsBackToCoordinate(t *testing.T) {
	m := New(testStore(t))

	// rsID not in store, but coordinates are: coordinate pass picks it up.
	r, err := m.MatchOne(variant.Identity{RSID: "rs999999", Chrom: "7", Pos: 117559590, Ref: "G", Alt: "A"})
	require.NoError(t, err)
	assert.Equal(t, ProvenanceCoordinate, r.Provenance)
}

func TestMatchUnmatched(t *testing.T) {
	m := New(testStore(t))

	r, err := m.MatchOne(variant.Identity{Chrom: "1", Pos: 12345, Ref: "A", Alt: "G"})
	require.NoError(t, err)
	assert.Equal(t, ProvenanceUnmatched, r.Provenance)
	assert.Nil(t, r.Record)
	assert.False(t, r.Matched())
}

func TestMatchInvalidExcluded(t *testing.T) {
	m := New(testStore(t))

	variants := []variant.Identity{
		{RSID: "rs202075563"},
		{Chrom: "", Pos: 100, Ref: "A", Alt: "G"}, // empty chromosome
		{Chrom: "7", Pos: -1, Ref: "G", Alt: "A"}, // non-positive position
		{Chrom: "7", Pos: 117559590, Ref: "G", Alt: "A"},
	}

	results, invalid := m.Match(variants)
	assert.Equal(t, 2, invalid)
	require.Len(t, results, 2)
	// Order of valid inputs is preserved
	assert.Equal(t, ProvenanceRSID, results[0].Provenance)
	assert.Equal(t, ProvenanceCoordinate, results[1].Provenance)
}

func TestMatchAmbiguousFlagSurfaced(t *testing.T) {
	s := store.NewMemory()
	s.Add(&store.Record{RSID: "rs1", Chrom: "1", Pos: 100, GeneSymbol: "FIRST"})
	s.Add(&store.Record{RSID: "rs1", Chrom: "1", Pos: 100, GeneSymbol: "SECOND"})
	m := New(s)

	r, err := m.MatchOne(variant.Identity{RSID: "rs1"})
	require.NoError(t, err)
	assert.True(t, r.Ambiguous)
	// Stable tie-break: first record in store insertion order
	assert.Equal(t, "FIRST", r.Record.GeneSymbol)
}
