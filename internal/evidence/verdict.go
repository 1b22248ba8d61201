package evidence

// Status distinguishes the three evaluator outcomes. NotApplicable means a
// required input field was absent or unparseable; it is never collapsed
// into DidNotFire, so audit output can tell "checked, did not fire" from
// "could not be checked".
type Status int

const (
	StatusNotApplicable Status = iota
	StatusDidNotFire
	StatusFired
)

// String returns the audit label for a status.
func (s Status) String() string {
	switch s {
	case StatusFired:
		return "fired"
	case StatusDidNotFire:
		return "did_not_fire"
	default:
		return "not_applicable"
	}
}

// Verdict is the outcome of evaluating one criterion against one matched
// variant.
type Verdict struct {
	Criterion     Criterion
	Status        Status
	Justification string
}

// Fired returns true if the criterion applied and was met.
func (v Verdict) Fired() bool {
	return v.Status == StatusFired
}

func fired(c Criterion, why string) Verdict {
	return Verdict{Criterion: c, Status: StatusFired, Justification: why}
}

func didNotFire(c Criterion, why string) Verdict {
	return Verdict{Criterion: c, Status: StatusDidNotFire, Justification: why}
}

func notApplicable(c Criterion, why string) Verdict {
	return Verdict{Criterion: c, Status: StatusNotApplicable, Justification: why}
}
