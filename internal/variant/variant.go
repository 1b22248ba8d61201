// Package variant provides the genomic variant identity type.
package variant

import (
	"fmt"
	"strings"
)

// Identity is the immutable key for a genomic variant. Fields are set at
// construction and validated with Validate before any matching is attempted.
type Identity struct {
	Chrom    string // Chromosome name (e.g. "12", "chr12", "MT")
	Pos      int64  // 1-based genomic position
	Ref      string // Reference allele
	Alt      string // Alternate allele
	RSID     string // dbSNP identifier (e.g. "rs202075563"), optional
	Assembly string // Genome assembly tag (e.g. "GRCh38"), optional
}

// validChroms is the closed set of accepted chromosome names after
// normalization.
var validChroms = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"7": true, "8": true, "9": true, "10": true, "11": true, "12": true,
	"13": true, "14": true, "15": true, "16": true, "17": true, "18": true,
	"19": true, "20": true, "21": true, "22": true, "X": true, "Y": true,
	"MT": true,
}

// IdentityError reports a malformed variant identity. The offending variant
// is excluded from batch output; the batch continues.
type IdentityError struct {
	Field  string
	Reason string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("invalid variant identity: %s %s", e.Field, e.Reason)
}

// NormalizeChrom returns the chromosome name without "chr" prefix, with
// X/Y/MT upper-cased and the mitochondrial aliases "M"/"chrM" mapped to "MT".
func (v Identity) NormalizeChrom() string {
	chrom := v.Chrom
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		chrom = chrom[3:]
	}
	chrom = strings.ToUpper(chrom)
	if chrom == "M" {
		chrom = "MT"
	}
	return chrom
}

// NormalizeRSID returns the rsID lower-cased with surrounding whitespace
// removed, or "" if none is set.
func (v Identity) NormalizeRSID() string {
	return strings.ToLower(strings.TrimSpace(v.RSID))
}

// HasRSID returns true if the variant carries a non-empty rsID.
func (v Identity) HasRSID() bool {
	return v.NormalizeRSID() != ""
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v Identity) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// Normalized returns a copy with the chromosome and rsID in canonical form.
func (v Identity) Normalized() Identity {
	v.Chrom = v.NormalizeChrom()
	v.RSID = v.NormalizeRSID()
	return v
}

// Validate checks the identity invariants: position >= 1, chromosome in
// {1..22, X, Y, MT} after normalization, and ref present whenever alt is.
// A variant with only an rsID and no coordinates is valid.
func (v Identity) Validate() error {
	hasCoords := v.Chrom != "" || v.Pos != 0 || v.Ref != "" || v.Alt != ""
	if !hasCoords {
		if !v.HasRSID() {
			return &IdentityError{Field: "identity", Reason: "has neither rsID nor coordinates"}
		}
		return nil
	}
	if v.Chrom == "" {
		return &IdentityError{Field: "chrom", Reason: "is empty"}
	}
	if chrom := v.NormalizeChrom(); !validChroms[chrom] {
		return &IdentityError{Field: "chrom", Reason: fmt.Sprintf("%q is not a recognized chromosome", v.Chrom)}
	}
	if v.Pos < 1 {
		return &IdentityError{Field: "pos", Reason: fmt.Sprintf("%d is not a positive 1-based position", v.Pos)}
	}
	if v.Alt != "" && v.Ref == "" {
		return &IdentityError{Field: "ref", Reason: "is empty while alt is set"}
	}
	return nil
}

// String formats the identity as chrom:pos:ref>alt, falling back to the
// rsID for coordinate-less variants.
func (v Identity) String() string {
	if v.Chrom == "" && v.HasRSID() {
		return v.NormalizeRSID()
	}
	if v.Alt == "" {
		return fmt.Sprintf("%s:%d:%s", v.NormalizeChrom(), v.Pos, v.Ref)
	}
	return fmt.Sprintf("%s:%d:%s>%s", v.NormalizeChrom(), v.Pos, v.Ref, v.Alt)
}
