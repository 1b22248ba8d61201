// Package output provides classification output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-acmg/internal/classify"
	"github.com/inodb/vibe-acmg/internal/evidence"
	"github.com/inodb/vibe-acmg/internal/pipeline"
)

// ResultWriter defines the interface for writing classification results.
type ResultWriter interface {
	WriteHeader() error
	Write(r pipeline.Result) error
	Flush() error
}

// TabWriter writes classification results in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Variant",
			"Location",
			"RSID",
			"Match",
			"Gene",
			"Consequence",
			"Frequency",
			"Significance",
			"Tier",
			"Rule",
			"Criteria",
			"Checked",
			"Ambiguous",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single classification result.
func (tw *TabWriter) Write(r pipeline.Result) error {
	v := r.Match.Variant

	location := "-"
	if v.Chrom != "" {
		location = fmt.Sprintf("%s:%d", v.Chrom, v.Pos)
	}

	rsid := "-"
	if v.RSID != "" {
		rsid = v.RSID
	}

	gene, consequence, significance, frequency := "-", "-", "-", "-"
	if rec := r.Match.Record; rec != nil {
		if rec.GeneSymbol != "" {
			gene = rec.GeneSymbol
		}
		if rec.Consequence != "" {
			consequence = rec.Consequence
		}
		if rec.ClinicalSignificance != "" {
			significance = rec.ClinicalSignificance
		}
		if rec.AlleleFrequency != nil {
			frequency = fmt.Sprintf("%g", *rec.AlleleFrequency)
		}
	}

	ambiguous := ""
	if r.Match.Ambiguous {
		ambiguous = "AMBIGUOUS"
	}

	fields := []string{
		v.String(),
		location,
		rsid,
		string(r.Match.Provenance),
		gene,
		consequence,
		frequency,
		significance,
		string(r.Classification.Tier),
		r.Classification.Rule,
		formatCriteria(r.Classification.Contributing),
		formatChecked(r.Verdicts),
		ambiguous,
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// formatCriteria joins fired criterion codes, "-" when none fired.
func formatCriteria(codes []evidence.Criterion) string {
	if len(codes) == 0 {
		return "-"
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// formatChecked lists the criteria that were actually checked (applicable),
// distinguishing them from criteria whose required inputs were absent.
func formatChecked(verdicts []evidence.Verdict) string {
	var parts []string
	for _, v := range verdicts {
		if v.Status != evidence.StatusNotApplicable {
			parts = append(parts, string(v.Criterion))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// summaryCriteria is the display order for criterion fire counts.
var summaryCriteria = []evidence.Criterion{
	evidence.CriterionPVS1, evidence.CriterionPS1, evidence.CriterionPM2,
	evidence.CriterionPM4, evidence.CriterionPM5, evidence.CriterionPP2,
	evidence.CriterionPP5, evidence.CriterionBA1, evidence.CriterionBA4,
	evidence.CriterionBS1, evidence.CriterionBS2, evidence.CriterionBP1,
	evidence.CriterionBP2, evidence.CriterionBP3, evidence.CriterionBP6,
	evidence.CriterionBP7,
}

// WriteSummary writes batch totals: variants per tier, criterion fire
// counts, and the excluded-input count. The result row count plus the
// invalid count always equals the input row count.
func WriteSummary(w io.Writer, batch *pipeline.BatchResult) {
	fmt.Fprintf(w, "Classified %d variants (%d invalid inputs excluded)\n", len(batch.Results), batch.Invalid)
	for _, tier := range []classify.Tier{
		classify.TierPathogenic,
		classify.TierLikelyPathogenic,
		classify.TierUncertain,
		classify.TierLikelyBenign,
		classify.TierBenign,
	} {
		if n := batch.TierCounts[tier]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", tier, n)
		}
	}
	if len(batch.CriterionCounts) > 0 {
		var parts []string
		for _, c := range summaryCriteria {
			if n := batch.CriterionCounts[c]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", c, n))
			}
		}
		fmt.Fprintf(w, "  criteria fired: %s\n", strings.Join(parts, " "))
	}
}
