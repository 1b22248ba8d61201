// Package pipeline wires matching, evidence assignment, and classification
// into a batch runner. Per-variant classification is a pure function of the
// variant and the read-only annotation store, so the batch is processed as
// a parallel map with input order restored on collection.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-acmg/internal/classify"
	"github.com/inodb/vibe-acmg/internal/evidence"
	"github.com/inodb/vibe-acmg/internal/match"
	"github.com/inodb/vibe-acmg/internal/store"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Result is the full per-variant output: the match, every verdict
// (including not-applicable ones, for audit), the evidence counts, and the
// classification.
type Result struct {
	Match          match.Result
	Verdicts       []evidence.Verdict
	Set            evidence.Set
	Classification classify.Classification
}

// BatchResult holds one Result per valid input variant in input order, the
// count of excluded malformed inputs, and fold-computed summary totals.
type BatchResult struct {
	Results         []Result
	Invalid         int
	TierCounts      map[classify.Tier]int
	CriterionCounts map[evidence.Criterion]int
}

// Pipeline classifies batches of variants against an annotation store.
type Pipeline struct {
	matcher  *match.Matcher
	assigner *evidence.Assigner
	logger   *zap.Logger
	workers  int
}

// New builds a pipeline over a fully constructed annotation store.
// Threshold validation failures surface here, before any variant is
// processed.
func New(s store.Lookup, th evidence.Thresholds) (*Pipeline, error) {
	assigner, err := evidence.NewAssigner(th)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		matcher:  match.New(s),
		assigner: assigner,
		logger:   zap.NewNop(),
	}, nil
}

// SetLogger sets the logger used for per-variant warnings.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
	p.matcher.SetLogger(l)
	p.assigner.SetLogger(l)
}

// SetWorkers overrides the worker count for Run. Zero means runtime.NumCPU.
func (p *Pipeline) SetWorkers(n int) {
	p.workers = n
}

// ClassifyOne classifies a single variant. It returns an error only for a
// malformed identity.
func (p *Pipeline) ClassifyOne(v variant.Identity) (Result, error) {
	m, err := p.matcher.MatchOne(v)
	if err != nil {
		return Result{}, err
	}
	verdicts := p.assigner.Assign(m)
	set := evidence.BuildSet(verdicts)
	return Result{
		Match:          m,
		Verdicts:       verdicts,
		Set:            set,
		Classification: classify.Classify(set),
	}, nil
}

// Run classifies a batch. Malformed variants are logged, counted in
// Invalid, and excluded; valid variants each produce exactly one Result, in
// input order regardless of worker scheduling.
func (p *Pipeline) Run(variants []variant.Identity) *BatchResult {
	items := make(chan workItem, 2*max(p.workers, 1))
	invalid := 0

	go func() {
		defer close(items)
		seq := 0
		for _, v := range variants {
			if err := v.Validate(); err != nil {
				invalid++
				p.logger.Warn("excluding malformed variant",
					zap.String("chrom", v.Chrom),
					zap.Int64("pos", v.Pos),
					zap.String("rsid", v.RSID),
					zap.Error(err))
				continue
			}
			items <- workItem{Seq: seq, Variant: v}
			seq++
		}
	}()

	batch := &BatchResult{
		TierCounts:      make(map[classify.Tier]int),
		CriterionCounts: make(map[evidence.Criterion]int),
	}

	results := p.parallelClassify(items, p.workers)
	orderedCollect(results, func(r workResult) {
		batch.Results = append(batch.Results, r.Result)
	})

	// The producer goroutine has finished once the results channel closed.
	batch.Invalid = invalid

	for _, r := range batch.Results {
		batch.TierCounts[r.Classification.Tier]++
		for _, c := range r.Classification.Contributing {
			batch.CriterionCounts[c]++
		}
	}

	return batch
}
