// Package classify combines ACMG evidence counts into a final
// pathogenicity tier with a machine-readable rationale.
package classify

import "github.com/inodb/vibe-acmg/internal/evidence"

// Tier is the final classification label.
type Tier string

const (
	TierPathogenic       Tier = "Pathogenic"
	TierLikelyPathogenic Tier = "LikelyPathogenic"
	TierUncertain        Tier = "Uncertain"
	TierLikelyBenign     Tier = "LikelyBenign"
	TierBenign           Tier = "Benign"
)

// Rule identifiers recorded in the classification for audit. Conflict and
// insufficient-evidence outcomes have their own identifiers.
const (
	RuleConflictingEvidence  = "ConflictingEvidence"
	RuleInsufficientEvidence = "InsufficientEvidence"
)

// Classification is the outcome for one evidence set: the tier, the
// identifier of the rule that fired, and the criterion codes that
// contributed. A given evidence set always yields the same classification.
type Classification struct {
	Tier         Tier
	Rule         string
	Contributing []evidence.Criterion
}

// combineRule is one row of the ACMG combining table. Rows are evaluated in
// declaration order; the first match wins within each side.
type combineRule struct {
	id    string
	match func(s evidence.Set) bool
}

// Pathogenic rules, in priority order.
var pathogenicRules = []combineRule{
	{"VeryStrong+Strong", func(s evidence.Set) bool {
		return s.VeryStrongPathogenic >= 1 && s.StrongPathogenic >= 1
	}},
	{"VeryStrong+Moderate>=2", func(s evidence.Set) bool {
		return s.VeryStrongPathogenic >= 1 && s.ModeratePathogenic >= 2
	}},
	{"VeryStrong+Moderate+Supporting", func(s evidence.Set) bool {
		return s.VeryStrongPathogenic >= 1 && s.ModeratePathogenic >= 1 && s.SupportingPathogenic >= 1
	}},
	{"VeryStrong+Supporting>=2", func(s evidence.Set) bool {
		return s.VeryStrongPathogenic >= 1 && s.SupportingPathogenic >= 2
	}},
	{"Strong>=2", func(s evidence.Set) bool {
		return s.StrongPathogenic >= 2
	}},
	{"Strong+Moderate>=3", func(s evidence.Set) bool {
		return s.StrongPathogenic >= 1 && s.ModeratePathogenic >= 3
	}},
	{"Strong+Moderate>=2+Supporting>=2", func(s evidence.Set) bool {
		return s.StrongPathogenic >= 1 && s.ModeratePathogenic >= 2 && s.SupportingPathogenic >= 2
	}},
	{"Strong+Moderate+Supporting>=4", func(s evidence.Set) bool {
		return s.StrongPathogenic >= 1 && s.ModeratePathogenic >= 1 && s.SupportingPathogenic >= 4
	}},
}

// Likely pathogenic rules, evaluated only when no pathogenic rule matched.
var likelyPathogenicRules = []combineRule{
	{"VeryStrong+Moderate", func(s evidence.Set) bool {
		return s.VeryStrongPathogenic >= 1 && s.ModeratePathogenic >= 1
	}},
	{"Strong+Moderate1-2", func(s evidence.Set) bool {
		return s.StrongPathogenic >= 1 && (s.ModeratePathogenic == 1 || s.ModeratePathogenic == 2)
	}},
	{"Strong+Supporting>=2", func(s evidence.Set) bool {
		return s.StrongPathogenic >= 1 && s.SupportingPathogenic >= 2
	}},
	{"Moderate>=3", func(s evidence.Set) bool {
		return s.ModeratePathogenic >= 3
	}},
	{"Moderate>=2+Supporting>=2", func(s evidence.Set) bool {
		return s.ModeratePathogenic >= 2 && s.SupportingPathogenic >= 2
	}},
	{"Moderate+Supporting>=4", func(s evidence.Set) bool {
		return s.ModeratePathogenic >= 1 && s.SupportingPathogenic >= 4
	}},
}

// Benign rules, in priority order.
var benignRules = []combineRule{
	{"StandAlone", func(s evidence.Set) bool {
		return s.StandAloneBenign >= 1
	}},
	{"StrongBenign>=2", func(s evidence.Set) bool {
		return s.StrongBenign >= 2
	}},
}

// Likely benign rules, evaluated only when no benign rule matched.
var likelyBenignRules = []combineRule{
	{"StrongBenign+Supporting", func(s evidence.Set) bool {
		return s.StrongBenign >= 1 && s.SupportingBenign >= 1
	}},
	{"SupportingBenign>=2", func(s evidence.Set) bool {
		return s.SupportingBenign >= 2
	}},
}

func firstMatch(rules []combineRule, s evidence.Set) (string, bool) {
	for _, r := range rules {
		if r.match(s) {
			return r.id, true
		}
	}
	return "", false
}

// Classify applies the ACMG/AMP combining rules to one evidence set. Both
// sides of the table are evaluated; if a pathogenic-leaning and a
// benign-leaning rule match simultaneously the result is forced to
// Uncertain — conflicting evidence never silently resolves toward either
// extreme.
func Classify(s evidence.Set) Classification {
	pathTier := TierPathogenic
	pathRule, pathOK := firstMatch(pathogenicRules, s)
	if !pathOK {
		pathTier = TierLikelyPathogenic
		pathRule, pathOK = firstMatch(likelyPathogenicRules, s)
	}

	benignTier := TierBenign
	benignRule, benignOK := firstMatch(benignRules, s)
	if !benignOK {
		benignTier = TierLikelyBenign
		benignRule, benignOK = firstMatch(likelyBenignRules, s)
	}

	contributing := append([]evidence.Criterion(nil), s.Contributing...)

	switch {
	case pathOK && benignOK:
		return Classification{Tier: TierUncertain, Rule: RuleConflictingEvidence, Contributing: contributing}
	case pathOK:
		return Classification{Tier: pathTier, Rule: pathRule, Contributing: contributing}
	case benignOK:
		return Classification{Tier: benignTier, Rule: benignRule, Contributing: contributing}
	default:
		return Classification{Tier: TierUncertain, Rule: RuleInsufficientEvidence, Contributing: contributing}
	}
}
