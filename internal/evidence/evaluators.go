package evidence

import (
	"fmt"
	"strings"

	"github.com/inodb/vibe-acmg/internal/match"
)

// Evaluator decides one criterion for one matched variant. Evaluators never
// consult each other; they see only the match result and the static term
// tables below.
type Evaluator interface {
	Criterion() Criterion
	Evaluate(r match.Result) Verdict
}

// Consequence term classes. Matching is lower-cased substring containment so
// both Sequence Ontology terms ("stop_gained") and ClinVar display terms
// ("nonsense") are recognized.
var lossOfFunctionTerms = []string{
	"nonsense",
	"stop_gained",
	"stop gained",
	"frameshift",
	"splice_acceptor",
	"splice acceptor",
	"splice_donor",
	"splice donor",
	"stop_lost",
	"stop lost",
}

var proteinLengthTerms = []string{
	"inframe_insertion",
	"inframe_deletion",
	"inframe insertion",
	"inframe deletion",
	"stop_lost",
	"stop lost",
}

func consequenceMatches(consequence string, terms []string) bool {
	c := strings.ToLower(consequence)
	for _, t := range terms {
		if strings.Contains(c, t) {
			return true
		}
	}
	return false
}

func isLossOfFunction(consequence string) bool {
	return consequenceMatches(consequence, lossOfFunctionTerms)
}

func isMissense(consequence string) bool {
	return strings.Contains(strings.ToLower(consequence), "missense")
}

// --- Frequency-based criteria ---

// ba1 fires for variants too common in the population to be pathogenic.
type ba1 struct{ th Thresholds }

func (ba1) Criterion() Criterion { return CriterionBA1 }

func (e ba1) Evaluate(r match.Result) Verdict {
	f := r.Record.AlleleFrequency
	if f == nil {
		return notApplicable(CriterionBA1, "no population allele frequency")
	}
	if *f > e.th.BA1MinFreq {
		return fired(CriterionBA1, fmt.Sprintf("allele frequency %g exceeds %g", *f, e.th.BA1MinFreq))
	}
	return didNotFire(CriterionBA1, fmt.Sprintf("allele frequency %g at or below %g", *f, e.th.BA1MinFreq))
}

// bs1 fires for variants more common than expected for the disorder but
// below the BA1 stand-alone cutoff.
type bs1 struct{ th Thresholds }

func (bs1) Criterion() Criterion { return CriterionBS1 }

func (e bs1) Evaluate(r match.Result) Verdict {
	f := r.Record.AlleleFrequency
	if f == nil {
		return notApplicable(CriterionBS1, "no population allele frequency")
	}
	if *f > e.th.BS1MinFreq && *f <= e.th.BA1MinFreq {
		return fired(CriterionBS1, fmt.Sprintf("allele frequency %g in (%g, %g]", *f, e.th.BS1MinFreq, e.th.BA1MinFreq))
	}
	return didNotFire(CriterionBS1, fmt.Sprintf("allele frequency %g outside (%g, %g]", *f, e.th.BS1MinFreq, e.th.BA1MinFreq))
}

// pm2 corroborates an existing pathogenic call with population rarity. It
// does not by itself assert pathogenicity of an unannotated variant, so the
// reference significance must already contain "pathogenic".
type pm2 struct{ th Thresholds }

func (pm2) Criterion() Criterion { return CriterionPM2 }

func (e pm2) Evaluate(r match.Result) Verdict {
	if r.Record.ClinicalSignificance == "" {
		return notApplicable(CriterionPM2, "no clinical significance annotation")
	}
	if !r.Record.SignificanceImpliesPathogenic() {
		return didNotFire(CriterionPM2, "reference significance does not imply pathogenic")
	}
	f := r.Record.AlleleFrequency
	if f != nil && *f >= e.th.PM2MaxFreq {
		return didNotFire(CriterionPM2, fmt.Sprintf("allele frequency %g not below %g", *f, e.th.PM2MaxFreq))
	}
	if f == nil {
		return fired(CriterionPM2, "pathogenic call, absent from population databases")
	}
	return fired(CriterionPM2, fmt.Sprintf("pathogenic call, allele frequency %g below %g", *f, e.th.PM2MaxFreq))
}

// --- Consequence-based criteria ---

// pvs1 fires for predicted loss-of-function variants in genes intolerant to
// loss of function (low oe_lof upper bound).
type pvs1 struct{ th Thresholds }

func (pvs1) Criterion() Criterion { return CriterionPVS1 }

func (e pvs1) Evaluate(r match.Result) Verdict {
	if r.Record.Consequence == "" {
		return notApplicable(CriterionPVS1, "no molecular consequence annotation")
	}
	if !isLossOfFunction(r.Record.Consequence) {
		return didNotFire(CriterionPVS1, fmt.Sprintf("consequence %q is not loss-of-function", r.Record.Consequence))
	}
	oe := r.Record.OELoFUpper
	if oe == nil {
		return notApplicable(CriterionPVS1, "no gene constraint annotation")
	}
	if *oe < e.th.LoFToleranceOE {
		return fired(CriterionPVS1, fmt.Sprintf("loss-of-function in constrained gene (oe_lof upper %g < %g)", *oe, e.th.LoFToleranceOE))
	}
	return didNotFire(CriterionPVS1, fmt.Sprintf("gene tolerates loss of function (oe_lof upper %g)", *oe))
}

// pm4 fires for protein-length-changing variants: in-frame indels and
// stop-loss.
type pm4 struct{}

func (pm4) Criterion() Criterion { return CriterionPM4 }

func (pm4) Evaluate(r match.Result) Verdict {
	if r.Record.Consequence == "" {
		return notApplicable(CriterionPM4, "no molecular consequence annotation")
	}
	if consequenceMatches(r.Record.Consequence, proteinLengthTerms) {
		return fired(CriterionPM4, fmt.Sprintf("protein length change: %s", r.Record.Consequence))
	}
	return didNotFire(CriterionPM4, fmt.Sprintf("consequence %q does not change protein length", r.Record.Consequence))
}

// pp2 fires for missense variants in constrained genes, where missense is a
// common disease mechanism.
type pp2 struct{ th Thresholds }

func (pp2) Criterion() Criterion { return CriterionPP2 }

func (e pp2) Evaluate(r match.Result) Verdict {
	if r.Record.Consequence == "" {
		return notApplicable(CriterionPP2, "no molecular consequence annotation")
	}
	if !isMissense(r.Record.Consequence) {
		return didNotFire(CriterionPP2, fmt.Sprintf("consequence %q is not missense", r.Record.Consequence))
	}
	oe := r.Record.OELoFUpper
	if oe == nil {
		return notApplicable(CriterionPP2, "no gene constraint annotation")
	}
	if *oe < e.th.LoFToleranceOE {
		return fired(CriterionPP2, fmt.Sprintf("missense in constrained gene (oe_lof upper %g < %g)", *oe, e.th.LoFToleranceOE))
	}
	return didNotFire(CriterionPP2, fmt.Sprintf("gene is not constrained (oe_lof upper %g)", *oe))
}

// ba4 fires for predicted loss-of-function variants in genes the population
// demonstrably tolerates losing — a high oe_lof upper bound means LoF there
// is not evidence of disease.
type ba4 struct{ th Thresholds }

func (ba4) Criterion() Criterion { return CriterionBA4 }

func (e ba4) Evaluate(r match.Result) Verdict {
	if r.Record.Consequence == "" {
		return notApplicable(CriterionBA4, "no molecular consequence annotation")
	}
	if !isLossOfFunction(r.Record.Consequence) {
		return didNotFire(CriterionBA4, fmt.Sprintf("consequence %q is not loss-of-function", r.Record.Consequence))
	}
	oe := r.Record.OELoFUpper
	if oe == nil {
		return notApplicable(CriterionBA4, "no gene constraint annotation")
	}
	if *oe > e.th.LoFToleranceOE {
		return fired(CriterionBA4, fmt.Sprintf("loss-of-function in LoF-tolerant gene (oe_lof upper %g > %g)", *oe, e.th.LoFToleranceOE))
	}
	return didNotFire(CriterionBA4, fmt.Sprintf("gene does not tolerate loss of function (oe_lof upper %g)", *oe))
}

// bp7 fires for synonymous variants with no predicted splice impact.
type bp7 struct{}

func (bp7) Criterion() Criterion { return CriterionBP7 }

func (bp7) Evaluate(r match.Result) Verdict {
	csq := strings.ToLower(r.Record.Consequence)
	if csq == "" {
		return notApplicable(CriterionBP7, "no molecular consequence annotation")
	}
	synonymous := strings.Contains(csq, "synonymous") || strings.Contains(csq, "silent")
	if !synonymous {
		return didNotFire(CriterionBP7, fmt.Sprintf("consequence %q is not synonymous", r.Record.Consequence))
	}
	if strings.Contains(csq, "splice") {
		return didNotFire(CriterionBP7, "synonymous change with predicted splice impact")
	}
	return fired(CriterionBP7, fmt.Sprintf("synonymous change with no splice impact: %s", r.Record.Consequence))
}

// --- Reputable-source criteria ---

// pp5 fires when an expert panel or practice guideline already calls the
// variant pathogenic.
type pp5 struct{}

func (pp5) Criterion() Criterion { return CriterionPP5 }

func (pp5) Evaluate(r match.Result) Verdict {
	if r.Record.ReviewStatus == "" {
		return notApplicable(CriterionPP5, "no review status annotation")
	}
	if !r.Record.IsExpertReviewed() {
		return notApplicable(CriterionPP5, fmt.Sprintf("review status %q is not expert panel or practice guideline", r.Record.ReviewStatus))
	}
	if r.Record.SignificanceImpliesPathogenic() && !r.Record.SignificanceImpliesBenign() {
		return fired(CriterionPP5, fmt.Sprintf("expert-reviewed %s call", r.Record.ClinicalSignificance))
	}
	return didNotFire(CriterionPP5, "expert review does not call the variant pathogenic")
}

// bp6 fires when an expert panel or practice guideline already calls the
// variant benign.
type bp6 struct{}

func (bp6) Criterion() Criterion { return CriterionBP6 }

func (bp6) Evaluate(r match.Result) Verdict {
	if r.Record.ReviewStatus == "" {
		return notApplicable(CriterionBP6, "no review status annotation")
	}
	if !r.Record.IsExpertReviewed() {
		return notApplicable(CriterionBP6, fmt.Sprintf("review status %q is not expert panel or practice guideline", r.Record.ReviewStatus))
	}
	if r.Record.SignificanceImpliesBenign() {
		return fired(CriterionBP6, fmt.Sprintf("expert-reviewed %s call", r.Record.ClinicalSignificance))
	}
	return didNotFire(CriterionBP6, "expert review does not call the variant benign")
}

// --- Homozygosity criteria ---

// bp2 fires for variants repeatedly observed homozygous in presumably
// unselected individuals.
type bp2 struct{ th Thresholds }

func (bp2) Criterion() Criterion { return CriterionBP2 }

func (e bp2) Evaluate(r match.Result) Verdict {
	hom := r.Record.HomozygoteCount
	if hom == nil {
		return notApplicable(CriterionBP2, "no homozygote count annotation")
	}
	if *hom >= e.th.BP2MinHomozygotes {
		return fired(CriterionBP2, fmt.Sprintf("%d homozygotes observed (minimum %d)", *hom, e.th.BP2MinHomozygotes))
	}
	return didNotFire(CriterionBP2, fmt.Sprintf("%d homozygotes observed, below minimum %d", *hom, e.th.BP2MinHomozygotes))
}

// bs2 is the strong-tier version of bp2, requiring more homozygote
// observations.
type bs2 struct{ th Thresholds }

func (bs2) Criterion() Criterion { return CriterionBS2 }

func (e bs2) Evaluate(r match.Result) Verdict {
	hom := r.Record.HomozygoteCount
	if hom == nil {
		return notApplicable(CriterionBS2, "no homozygote count annotation")
	}
	if *hom >= e.th.BS2MinHomozygotes {
		return fired(CriterionBS2, fmt.Sprintf("%d homozygotes observed (minimum %d)", *hom, e.th.BS2MinHomozygotes))
	}
	return didNotFire(CriterionBS2, fmt.Sprintf("%d homozygotes observed, below minimum %d", *hom, e.th.BS2MinHomozygotes))
}
