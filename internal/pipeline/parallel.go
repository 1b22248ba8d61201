package pipeline

import (
	"runtime"
	"sync"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// workItem holds a validated variant ready for classification.
type workItem struct {
	Seq     int
	Variant variant.Identity
}

// workResult holds the classification output for a single variant.
type workResult struct {
	Seq    int
	Result Result
}

// parallelClassify classifies work items using a pool of workers. Results
// are sent to the returned channel in arrival order (not sequence order).
// Use orderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func (p *Pipeline) parallelClassify(items <-chan workItem, workers int) <-chan workResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				// Validation happened before enqueueing, so classifyMatched
				// cannot fail here.
				r, _ := p.ClassifyOne(item.Variant)
				results <- workResult{Seq: item.Seq, Result: r}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results in a pending map and emits them as soon as
// the next expected sequence number is available. Blocks until the results
// channel is closed.
func orderedCollect(results <-chan workResult, fn func(workResult)) {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			fn(rr)
		}
	}
}
