package classify

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-acmg/internal/evidence"
)

func TestClassifyTiers(t *testing.T) {
	tests := []struct {
		name     string
		set      evidence.Set
		wantTier Tier
		wantRule string
	}{
		{
			"very strong plus strong",
			evidence.Set{VeryStrongPathogenic: 1, StrongPathogenic: 1},
			TierPathogenic, "VeryStrong+Strong",
		},
		{
			"very strong plus two moderate",
			evidence.Set{VeryStrongPathogenic: 1, ModeratePathogenic: 2},
			TierPathogenic, "VeryStrong+Moderate>=2",
		},
		{
			"very strong plus moderate plus supporting",
			evidence.Set{VeryStrongPathogenic: 1, ModeratePathogenic: 1, SupportingPathogenic: 1},
			TierPathogenic, "VeryStrong+Moderate+Supporting",
		},
		{
			"very strong plus two supporting",
			evidence.Set{VeryStrongPathogenic: 1, SupportingPathogenic: 2},
			TierPathogenic, "VeryStrong+Supporting>=2",
		},
		{
			"two strong",
			evidence.Set{StrongPathogenic: 2},
			TierPathogenic, "Strong>=2",
		},
		{
			"strong plus three moderate",
			evidence.Set{StrongPathogenic: 1, ModeratePathogenic: 3},
			TierPathogenic, "Strong+Moderate>=3",
		},
		{
			"strong plus two moderate plus two supporting",
			evidence.Set{StrongPathogenic: 1, ModeratePathogenic: 2, SupportingPathogenic: 2},
			TierPathogenic, "Strong+Moderate>=2+Supporting>=2",
		},
		{
			"strong plus moderate plus four supporting",
			evidence.Set{StrongPathogenic: 1, ModeratePathogenic: 1, SupportingPathogenic: 4},
			TierPathogenic, "Strong+Moderate+Supporting>=4",
		},
		{
			"very strong plus one moderate",
			evidence.Set{VeryStrongPathogenic: 1, ModeratePathogenic: 1},
			TierLikelyPathogenic, "VeryStrong+Moderate",
		},
		{
			"strong plus one moderate",
			evidence.Set{StrongPathogenic: 1, ModeratePathogenic: 1},
			TierLikelyPathogenic, "Strong+Moderate1-2",
		},
		{
			"strong plus two supporting",
			evidence.Set{StrongPathogenic: 1, SupportingPathogenic: 2},
			TierLikelyPathogenic, "Strong+Supporting>=2",
		},
		{
			"three moderate",
			evidence.Set{ModeratePathogenic: 3},
			TierLikelyPathogenic, "Moderate>=3",
		},
		{
			"two moderate plus two supporting",
			evidence.Set{ModeratePathogenic: 2, SupportingPathogenic: 2},
			TierLikelyPathogenic, "Moderate>=2+Supporting>=2",
		},
		{
			"moderate plus four supporting",
			evidence.Set{ModeratePathogenic: 1, SupportingPathogenic: 4},
			TierLikelyPathogenic, "Moderate+Supporting>=4",
		},
		{
			"stand-alone benign",
			evidence.Set{StandAloneBenign: 1},
			TierBenign, "StandAlone",
		},
		{
			"two strong benign",
			evidence.Set{StrongBenign: 2},
			TierBenign, "StrongBenign>=2",
		},
		{
			"strong benign plus supporting",
			evidence.Set{StrongBenign: 1, SupportingBenign: 1},
			TierLikelyBenign, "StrongBenign+Supporting",
		},
		{
			"two supporting benign",
			evidence.Set{SupportingBenign: 2},
			TierLikelyBenign, "SupportingBenign>=2",
		},
		{
			"all zero",
			evidence.Set{},
			TierUncertain, RuleInsufficientEvidence,
		},
		{
			"lone moderate",
			evidence.Set{ModeratePathogenic: 1},
			TierUncertain, RuleInsufficientEvidence,
		},
		{
			"stand-alone benign with sub-threshold pathogenic support",
			evidence.Set{StandAloneBenign: 1, SupportingPathogenic: 1},
			TierBenign, "StandAlone",
		},
		{
			"conflict forces uncertain",
			evidence.Set{StandAloneBenign: 1, VeryStrongPathogenic: 1, StrongPathogenic: 1},
			TierUncertain, RuleConflictingEvidence,
		},
		{
			"likely tiers also conflict",
			evidence.Set{ModeratePathogenic: 3, SupportingBenign: 2},
			TierUncertain, RuleConflictingEvidence,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.set)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantRule, got.Rule)
		})
	}
}

func TestClassifyRecordsContributingCriteria(t *testing.T) {
	s := evidence.Set{
		VeryStrongPathogenic: 1,
		StrongPathogenic:     1,
		Contributing:         []evidence.Criterion{evidence.CriterionPVS1, evidence.CriterionPS1},
	}
	got := Classify(s)
	assert.Equal(t, TierPathogenic, got.Tier)
	assert.Equal(t, []evidence.Criterion{evidence.CriterionPVS1, evidence.CriterionPS1}, got.Contributing)
}

// TestClassifyPure verifies referential transparency: repeated calls on the
// same counts give identical results.
func TestClassifyPure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s := randomSet(rng)
		first := Classify(s)
		for j := 0; j < 3; j++ {
			assert.Equal(t, first, Classify(s))
		}
	}
}

// tierRank orders tiers from most benign (0) to most pathogenic (4).
func tierRank(t Tier) int {
	switch t {
	case TierBenign:
		return 0
	case TierLikelyBenign:
		return 1
	case TierUncertain:
		return 2
	case TierLikelyPathogenic:
		return 3
	default:
		return 4
	}
}

func randomSet(rng *rand.Rand) evidence.Set {
	return evidence.Set{
		VeryStrongPathogenic: rng.Intn(3),
		StrongPathogenic:     rng.Intn(4),
		ModeratePathogenic:   rng.Intn(5),
		SupportingPathogenic: rng.Intn(6),
		StandAloneBenign:     rng.Intn(2),
		StrongBenign:         rng.Intn(3),
		SupportingBenign:     rng.Intn(4),
	}
}

// TestClassifyMonotonic perturbs random evidence sets: raising a single
// pathogenic count must never move the classification toward benign, except
// into Uncertain when it creates a conflict.
func TestClassifyMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	bump := []func(*evidence.Set){
		func(s *evidence.Set) { s.VeryStrongPathogenic++ },
		func(s *evidence.Set) { s.StrongPathogenic++ },
		func(s *evidence.Set) { s.ModeratePathogenic++ },
		func(s *evidence.Set) { s.SupportingPathogenic++ },
	}

	for i := 0; i < 2000; i++ {
		base := randomSet(rng)
		before := Classify(base)

		perturbed := base
		bump[rng.Intn(len(bump))](&perturbed)
		after := Classify(perturbed)

		if after.Rule == RuleConflictingEvidence || before.Rule == RuleConflictingEvidence {
			continue
		}
		assert.GreaterOrEqual(t, tierRank(after.Tier), tierRank(before.Tier),
			"raising pathogenic evidence moved %+v from %s to %s", base, before.Tier, after.Tier)
	}
}
