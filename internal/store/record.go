// Package store provides read-only annotation stores indexed by rsID and
// by (chromosome, position) coordinate key.
package store

import "strings"

// Record holds the reference-side annotation facts for a single variant.
// Optional numeric fields are pointers; nil means the source did not report
// a value, which downstream evaluators must distinguish from zero.
type Record struct {
	RSID                 string   // dbSNP identifier, lower-cased
	Chrom                string   // normalized chromosome (no "chr" prefix)
	Pos                  int64    // 1-based position
	Ref                  string   // reference allele
	Alt                  string   // alternate allele
	ClinicalSignificance string   // e.g. "Pathogenic", "Benign/Likely benign"
	ReviewStatus         string   // e.g. "reviewed by expert panel"
	Consequence          string   // molecular consequence term(s)
	AlleleFrequency      *float64 // population allele frequency in [0,1]
	HomozygoteCount      *int64   // gnomAD-style homozygote observation count
	GeneSymbol           string   // gene symbol, e.g. "BRCA2"
	OELoFUpper           *float64 // gnomAD oe_lof upper bound for the gene
}

// CoordKey identifies a genomic position for allele-agnostic lookup.
type CoordKey struct {
	Chrom string
	Pos   int64
}

// Hit is a single lookup result. Ambiguous is set when the store holds more
// than one record under the looked-up key; the returned record is then the
// first one inserted, so repeated runs on the same store stay reproducible.
type Hit struct {
	Record    *Record
	Ambiguous bool
}

// Lookup is the read-only interface the matcher consumes. Implementations
// must be safe for concurrent use once fully built.
type Lookup interface {
	ByRSID(rsid string) (Hit, bool)
	ByCoordinate(chrom string, pos int64) (Hit, bool)
}

// IsExpertReviewed returns true if the review status indicates an expert
// panel or practice guideline.
func (r *Record) IsExpertReviewed() bool {
	status := strings.ToLower(r.ReviewStatus)
	return strings.Contains(status, "expert panel") || strings.Contains(status, "practice guideline")
}

// SignificanceImpliesPathogenic returns true if the clinical significance
// label contains "pathogenic" (this includes "likely pathogenic").
func (r *Record) SignificanceImpliesPathogenic() bool {
	return strings.Contains(strings.ToLower(r.ClinicalSignificance), "pathogenic")
}

// SignificanceImpliesBenign returns true if the clinical significance label
// contains "benign" (this includes "likely benign").
func (r *Record) SignificanceImpliesBenign() bool {
	return strings.Contains(strings.ToLower(r.ClinicalSignificance), "benign")
}
