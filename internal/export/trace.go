package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Trace is a fully drained run: the input, every step and the summary
// counters over those steps.
type Trace struct {
	Algorithm sorting.Kind       `json:"algorithm"`
	Input     []int              `json:"input"`
	Steps     []sorting.Step     `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Record runs kind over input without pacing and keeps every step.
func Record(kind sorting.Kind, input []int) (*Trace, error) {
	seq, err := sorting.Run(kind, input)
	if err != nil {
		return nil, err
	}

	c := metrics.NewCollector(
		metrics.NewComparisons(),
		metrics.NewSwaps(),
		metrics.NewStepCounter(),
		metrics.NewProgress(),
	)
	steps := make([]sorting.Step, 0)
	for step := range seq {
		c.Observe(step)
		steps = append(steps, step)
	}

	return &Trace{
		Algorithm: kind,
		Input:     append([]int{}, input...),
		Steps:     steps,
		Metrics:   c.Values(),
	}, nil
}

// Final returns the last step, if any.
func (t *Trace) Final() (sorting.Step, bool) {
	if len(t.Steps) == 0 {
		return sorting.Step{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

func WriteJSON(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
