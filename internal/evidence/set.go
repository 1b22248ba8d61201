package evidence

// Set holds per-variant evidence counts, one per ACMG strength category,
// plus the criterion codes that fired. Built once per variant by BuildSet
// and immutable afterwards.
type Set struct {
	VeryStrongPathogenic int
	StrongPathogenic     int
	ModeratePathogenic   int
	SupportingPathogenic int
	StandAloneBenign     int
	StrongBenign         int
	SupportingBenign     int

	Contributing []Criterion // criteria that fired, in verdict order
}

// BuildSet folds a sequence of verdicts into an evidence set. Each fired
// verdict increments exactly one category counter via the closed
// criterion-to-category table; not-applicable and did-not-fire verdicts
// contribute nothing.
func BuildSet(verdicts []Verdict) Set {
	var s Set
	for _, v := range verdicts {
		if !v.Fired() {
			continue
		}
		cat, ok := v.Criterion.Category()
		if !ok {
			continue
		}
		switch cat {
		case VeryStrongPathogenic:
			s.VeryStrongPathogenic++
		case StrongPathogenic:
			s.StrongPathogenic++
		case ModeratePathogenic:
			s.ModeratePathogenic++
		case SupportingPathogenic:
			s.SupportingPathogenic++
		case StandAloneBenign:
			s.StandAloneBenign++
		case StrongBenign:
			s.StrongBenign++
		case SupportingBenign:
			s.SupportingBenign++
		}
		s.Contributing = append(s.Contributing, v.Criterion)
	}
	return s
}

// Counts returns the seven counts in category declaration order, for
// summary output.
func (s Set) Counts() [7]int {
	return [7]int{
		s.VeryStrongPathogenic,
		s.StrongPathogenic,
		s.ModeratePathogenic,
		s.SupportingPathogenic,
		s.StandAloneBenign,
		s.StrongBenign,
		s.SupportingBenign,
	}
}
