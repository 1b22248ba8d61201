package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-acmg/internal/classify"
	"github.com/inodb/vibe-acmg/internal/evidence"
	"github.com/inodb/vibe-acmg/internal/match"
	"github.com/inodb/vibe-acmg/internal/pipeline"
	"github.com/inodb/vibe-acmg/internal/store"
	"github.com/inodb/vibe-acmg/internal/variant"
)

func floatPtr(f float64) *float64 { return &f }

func sampleResult() pipeline.Result {
	return pipeline.Result{
		Match: match.Result{
			Variant: variant.Identity{Chrom: "13", Pos: 32340301, Ref: "GT", Alt: "G", RSID: "rs80359550"},
			Record: &store.Record{
				GeneSymbol:           "BRCA2",
				Consequence:          "frameshift",
				ClinicalSignificance: "Pathogenic",
				AlleleFrequency:      floatPtr(0.00001),
			},
			Provenance: match.ProvenanceRSID,
		},
		Verdicts: []evidence.Verdict{
			{Criterion: evidence.CriterionPVS1, Status: evidence.StatusFired},
			{Criterion: evidence.CriterionPM2, Status: evidence.StatusFired},
			{Criterion: evidence.CriterionBA1, Status: evidence.StatusDidNotFire},
			{Criterion: evidence.CriterionBP2, Status: evidence.StatusNotApplicable},
		},
		Classification: classify.Classification{
			Tier:         classify.TierPathogenic,
			Rule:         "VeryStrong+Moderate+Supporting",
			Contributing: []evidence.Criterion{evidence.CriterionPVS1, evidence.CriterionPM2},
		},
	}
}

func TestTabWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	require.NoError(t, tw.WriteHeader())
	require.NoError(t, tw.Write(sampleResult()))
	require.NoError(t, tw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "#Variant\tLocation\tRSID\t"))

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 13)
	assert.Equal(t, "13:32340301:GT>G", fields[0])
	assert.Equal(t, "13:32340301", fields[1])
	assert.Equal(t, "rs80359550", fields[2])
	assert.Equal(t, "rsid", fields[3])
	assert.Equal(t, "BRCA2", fields[4])
	assert.Equal(t, "Pathogenic", fields[7])
	assert.Equal(t, "Pathogenic", fields[8])
	assert.Equal(t, "VeryStrong+Moderate+Supporting", fields[9])
	assert.Equal(t, "PVS1,PM2", fields[10])
	// Checked column excludes the not-applicable BP2
	assert.Equal(t, "PVS1,PM2,BA1", fields[11])
	assert.Equal(t, "", fields[12])
}

func TestTabWriterUnmatched(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	r := pipeline.Result{
		Match: match.Result{
			Variant:    variant.Identity{Chrom: "2", Pos: 99999, Ref: "A", Alt: "T"},
			Provenance: match.ProvenanceUnmatched,
		},
		Classification: classify.Classification{
			Tier: classify.TierUncertain,
			Rule: classify.RuleInsufficientEvidence,
		},
	}

	require.NoError(t, tw.Write(r))
	require.NoError(t, tw.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	require.Len(t, fields, 13)
	assert.Equal(t, "unmatched", fields[3])
	assert.Equal(t, "-", fields[4])
	assert.Equal(t, "-", fields[10])
	assert.Equal(t, "-", fields[11])
}

func TestWriteSummary(t *testing.T) {
	batch := &pipeline.BatchResult{
		Results: []pipeline.Result{sampleResult()},
		Invalid: 2,
		TierCounts: map[classify.Tier]int{
			classify.TierPathogenic: 1,
		},
		CriterionCounts: map[evidence.Criterion]int{
			evidence.CriterionPVS1: 1,
			evidence.CriterionPM2:  1,
		},
	}

	var buf bytes.Buffer
	WriteSummary(&buf, batch)

	out := buf.String()
	assert.Contains(t, out, "Classified 1 variants (2 invalid inputs excluded)")
	assert.Contains(t, out, "Pathogenic: 1")
	assert.Contains(t, out, "PVS1=1 PM2=1")
}
