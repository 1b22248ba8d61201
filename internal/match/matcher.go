// Package match reconciles user variants against an annotation store.
package match

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/store"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Provenance records which strategy linked a user variant to a reference
// record.
type Provenance string

const (
	ProvenanceRSID       Provenance = "rsid"
	ProvenanceCoordinate Provenance = "coordinate"
	ProvenanceUnmatched  Provenance = "unmatched"
)

// Result pairs a user variant with zero or one annotation record plus the
// provenance of the match. It is created once per variant and never mutated.
type Result struct {
	Variant    variant.Identity // normalized identity
	Record     *store.Record    // nil when Provenance is unmatched
	Provenance Provenance
	Ambiguous  bool // the store held multiple records under the matched key
}

// Matched returns true if the variant was linked to a reference record.
func (r Result) Matched() bool {
	return r.Record != nil
}

// Matcher links user variants to annotation records. The rsID strategy runs
// first; the allele-agnostic coordinate strategy only fires for variants the
// rsID pass left unmatched, so a variant never produces two results.
type Matcher struct {
	store  store.Lookup
	logger *zap.Logger
}

// New creates a matcher over a fully built annotation store.
func New(s store.Lookup) *Matcher {
	return &Matcher{
		store:  s,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for per-variant warning messages.
func (m *Matcher) SetLogger(l *zap.Logger) {
	m.logger = l
}

// MatchOne resolves a single variant. It returns an error only for a
// malformed identity (*variant.IdentityError); an absent reference record
// is a valid result with unmatched provenance.
func (m *Matcher) MatchOne(v variant.Identity) (Result, error) {
	if err := v.Validate(); err != nil {
		return Result{}, err
	}
	norm := v.Normalized()

	if norm.HasRSID() {
		if hit, ok := m.store.ByRSID(norm.RSID); ok {
			return Result{
				Variant:    norm,
				Record:     hit.Record,
				Provenance: ProvenanceRSID,
				Ambiguous:  hit.Ambiguous,
			}, nil
		}
	}

	if norm.Chrom != "" && norm.Pos >= 1 {
		if hit, ok := m.store.ByCoordinate(norm.Chrom, norm.Pos); ok {
			return Result{
				Variant:    norm,
				Record:     hit.Record,
				Provenance: ProvenanceCoordinate,
				Ambiguous:  hit.Ambiguous,
			}, nil
		}
	}

	return Result{Variant: norm, Provenance: ProvenanceUnmatched}, nil
}

// Match resolves a batch of variants, one result per valid input variant in
// input order. Malformed variants are logged, counted, and excluded; they
// never abort the batch.
func (m *Matcher) Match(variants []variant.Identity) ([]Result, int) {
	results := make([]Result, 0, len(variants))
	invalid := 0

	for _, v := range variants {
		r, err := m.MatchOne(v)
		if err != nil {
			invalid++
			m.logger.Warn("excluding malformed variant",
				zap.String("chrom", v.Chrom),
				zap.Int64("pos", v.Pos),
				zap.String("rsid", v.RSID),
				zap.Error(err))
			continue
		}
		if r.Ambiguous {
			m.logger.Warn("ambiguous annotation key, using first record",
				zap.String("variant", r.Variant.String()),
				zap.String("provenance", string(r.Provenance)))
		}
		results = append(results, r)
	}

	return results, invalid
}
