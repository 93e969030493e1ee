package sorting

import (
	"context"

	"github.com/sourcegraph/conc"
)

// Ensemble validates one engine over many inputs concurrently.
type Ensemble struct {
	kind   Kind
	inputs [][]int
}

type EnsembleResult struct {
	Input   []int
	Summary Summary
	Err     error
}

func NewEnsemble(kind Kind, inputs [][]int) *Ensemble {
	return &Ensemble{kind: kind, inputs: inputs}
}

// Run validates every input in its own goroutine. Results keep input order.
// A panicking engine is re-raised on the caller's goroutine.
// Contract violations are reported per result; the returned error is only
// set for an unknown algorithm or a canceled context.
func (e *Ensemble) Run(ctx context.Context) ([]EnsembleResult, error) {
	engine, err := Lookup(e.kind)
	if err != nil {
		return nil, err
	}

	results := make([]EnsembleResult, len(e.inputs))

	var wg conc.WaitGroup
	for i, input := range e.inputs {
		wg.Go(func() {
			if ctx.Err() != nil {
				return
			}
			sum, err := Validate(input, engine.Steps(input))
			results[i] = EnsembleResult{Input: input, Summary: sum, Err: err}
		})
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
