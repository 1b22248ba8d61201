package evidence

import "fmt"

// ConfigurationError reports invalid evaluator or classifier configuration.
// It is fatal at pipeline construction time, before any variant is processed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Thresholds holds the tunable cutoffs the evaluators consult. Construct
// with DefaultThresholds and override fields, then pass to NewAssigner,
// which validates before any variant is processed.
type Thresholds struct {
	BA1MinFreq        float64 // BA1 fires above this allele frequency
	BS1MinFreq        float64 // BS1 fires above this, up to BA1MinFreq
	PM2MaxFreq        float64 // PM2 rarity cutoff
	BP2MinHomozygotes int64   // BP2 minimum homozygote observations
	BS2MinHomozygotes int64   // BS2 minimum homozygote observations
	LoFToleranceOE    float64 // oe_lof upper bound above which a gene is LoF-tolerant
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BA1MinFreq:        0.05,
		BS1MinFreq:        0.01,
		PM2MaxFreq:        0.0001,
		BP2MinHomozygotes: 5,
		BS2MinHomozygotes: 10,
		LoFToleranceOE:    0.35,
	}
}

// Validate checks every cutoff for range and ordering errors.
func (t Thresholds) Validate() error {
	if t.BA1MinFreq <= 0 || t.BA1MinFreq > 1 {
		return &ConfigurationError{Field: "ba1_min_freq", Reason: fmt.Sprintf("%g is outside (0,1]", t.BA1MinFreq)}
	}
	if t.BS1MinFreq <= 0 || t.BS1MinFreq > 1 {
		return &ConfigurationError{Field: "bs1_min_freq", Reason: fmt.Sprintf("%g is outside (0,1]", t.BS1MinFreq)}
	}
	if t.BS1MinFreq >= t.BA1MinFreq {
		return &ConfigurationError{Field: "bs1_min_freq", Reason: fmt.Sprintf("%g must be below ba1_min_freq %g", t.BS1MinFreq, t.BA1MinFreq)}
	}
	if t.PM2MaxFreq <= 0 || t.PM2MaxFreq > 1 {
		return &ConfigurationError{Field: "pm2_max_freq", Reason: fmt.Sprintf("%g is outside (0,1]", t.PM2MaxFreq)}
	}
	if t.BP2MinHomozygotes < 1 {
		return &ConfigurationError{Field: "bp2_min_homozygotes", Reason: fmt.Sprintf("%d must be at least 1", t.BP2MinHomozygotes)}
	}
	if t.BS2MinHomozygotes < t.BP2MinHomozygotes {
		return &ConfigurationError{Field: "bs2_min_homozygotes", Reason: fmt.Sprintf("%d must be at least bp2_min_homozygotes %d", t.BS2MinHomozygotes, t.BP2MinHomozygotes)}
	}
	if t.LoFToleranceOE <= 0 {
		return &ConfigurationError{Field: "lof_tolerance_oe", Reason: fmt.Sprintf("%g must be positive", t.LoFToleranceOE)}
	}
	return nil
}
