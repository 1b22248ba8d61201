// Package evidence evaluates ACMG/AMP evidence criteria against matched
// variants and aggregates verdicts into per-strength evidence counts.
package evidence

// Criterion is an ACMG/AMP criterion code. The catalog is closed: codes not
// listed here are rejected at registration time.
type Criterion string

const (
	// Pathogenic criteria
	CriterionPVS1 Criterion = "PVS1"
	CriterionPS1  Criterion = "PS1"
	CriterionPM2  Criterion = "PM2"
	CriterionPM4  Criterion = "PM4"
	CriterionPM5  Criterion = "PM5"
	CriterionPP2  Criterion = "PP2"
	CriterionPP5  Criterion = "PP5"

	// Benign criteria
	CriterionBA1 Criterion = "BA1"
	CriterionBA4 Criterion = "BA4"
	CriterionBS1 Criterion = "BS1"
	CriterionBS2 Criterion = "BS2"
	CriterionBP1 Criterion = "BP1"
	CriterionBP2 Criterion = "BP2"
	CriterionBP3 Criterion = "BP3"
	CriterionBP6 Criterion = "BP6"
	CriterionBP7 Criterion = "BP7"
)

// Category is an ACMG evidence strength class.
type Category string

const (
	VeryStrongPathogenic Category = "very_strong_pathogenic"
	StrongPathogenic     Category = "strong_pathogenic"
	ModeratePathogenic   Category = "moderate_pathogenic"
	SupportingPathogenic Category = "supporting_pathogenic"
	StandAloneBenign     Category = "stand_alone_benign"
	StrongBenign         Category = "strong_benign"
	SupportingBenign     Category = "supporting_benign"
)

// categoryByCriterion maps each criterion to exactly one strength category.
// The table is closed; a criterion never contributes to two categories.
var categoryByCriterion = map[Criterion]Category{
	CriterionPVS1: VeryStrongPathogenic,
	CriterionPS1:  StrongPathogenic,
	CriterionPM2:  ModeratePathogenic,
	CriterionPM4:  ModeratePathogenic,
	CriterionPM5:  ModeratePathogenic,
	CriterionPP2:  SupportingPathogenic,
	CriterionPP5:  SupportingPathogenic,
	CriterionBA1:  StandAloneBenign,
	CriterionBA4:  StandAloneBenign,
	CriterionBS1:  StrongBenign,
	CriterionBS2:  StrongBenign,
	CriterionBP1:  SupportingBenign,
	CriterionBP2:  SupportingBenign,
	CriterionBP3:  SupportingBenign,
	CriterionBP6:  SupportingBenign,
	CriterionBP7:  SupportingBenign,
}

// Category returns the strength category for a criterion. The second return
// is false for codes outside the catalog.
func (c Criterion) Category() (Category, bool) {
	cat, ok := categoryByCriterion[c]
	return cat, ok
}

// IsPathogenic returns true for pathogenic-side criteria.
func (c Criterion) IsPathogenic() bool {
	switch categoryByCriterion[c] {
	case VeryStrongPathogenic, StrongPathogenic, ModeratePathogenic, SupportingPathogenic:
		return true
	}
	return false
}
