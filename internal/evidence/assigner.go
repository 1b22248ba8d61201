package evidence

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/match"
)

// Assigner runs the registered criterion evaluators against matched
// variants. Criteria the engine cannot compute from static annotation
// fields (PS1, PM5, BP1, BP3 need protein-level or domain data) are simply
// absent from the registry, never defaulted.
type Assigner struct {
	evaluators []Evaluator
	logger     *zap.Logger
}

// NewAssigner builds the standard evaluator registry. Thresholds are
// validated here, before any variant is processed.
func NewAssigner(th Thresholds) (*Assigner, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}

	a := &Assigner{logger: zap.NewNop()}
	for _, ev := range []Evaluator{
		pvs1{th: th},
		pm2{th: th},
		pm4{},
		pp2{th: th},
		pp5{},
		ba1{th: th},
		ba4{th: th},
		bs1{th: th},
		bs2{th: th},
		bp2{th: th},
		bp6{},
		bp7{},
	} {
		if err := a.Register(ev); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// SetLogger sets the logger for evaluation failure messages.
func (a *Assigner) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Register adds an evaluator. The criterion must be in the catalog and not
// already registered.
func (a *Assigner) Register(ev Evaluator) error {
	c := ev.Criterion()
	if _, ok := c.Category(); !ok {
		return &ConfigurationError{Field: "criterion", Reason: fmt.Sprintf("%q is not in the catalog", c)}
	}
	for _, existing := range a.evaluators {
		if existing.Criterion() == c {
			return &ConfigurationError{Field: "criterion", Reason: fmt.Sprintf("%q registered twice", c)}
		}
	}
	a.evaluators = append(a.evaluators, ev)
	return nil
}

// Criteria returns the registered criterion codes in registration order.
func (a *Assigner) Criteria() []Criterion {
	codes := make([]Criterion, len(a.evaluators))
	for i, ev := range a.evaluators {
		codes[i] = ev.Criterion()
	}
	return codes
}

// Assign evaluates every registered criterion against one matched variant.
// Unmatched variants yield no verdicts. An evaluator panic is contained and
// downgraded to a not-applicable verdict for that criterion only.
func (a *Assigner) Assign(r match.Result) []Verdict {
	if !r.Matched() {
		return nil
	}

	verdicts := make([]Verdict, 0, len(a.evaluators))
	for _, ev := range a.evaluators {
		verdicts = append(verdicts, a.evaluate(ev, r))
	}
	return verdicts
}

func (a *Assigner) evaluate(ev Evaluator, r match.Result) (v Verdict) {
	defer func() {
		if p := recover(); p != nil {
			a.logger.Warn("criterion evaluation failed",
				zap.String("criterion", string(ev.Criterion())),
				zap.String("variant", r.Variant.String()),
				zap.Any("panic", p))
			v = notApplicable(ev.Criterion(), fmt.Sprintf("evaluation failed: %v", p))
		}
	}()
	return ev.Evaluate(r)
}
