package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sortviz/internal/sorting"
)

var (
	cmp    = sorting.Step{Array: []int{2, 1}, Comparing: sorting.IndexSet{0, 1}}
	swp    = sorting.Step{Array: []int{2, 1}, Swapping: sorting.IndexSet{0, 1}}
	settle = sorting.Step{Array: []int{1, 2}, Sorted: sorting.IndexSet{0, 1}}
)

func TestEdgeCounterCountsRuns(t *testing.T) {
	tests := []struct {
		name  string
		steps []sorting.Step
		want  int
	}{
		{"empty", nil, 0},
		{"single compare", []sorting.Step{cmp}, 1},
		{"contiguous run", []sorting.Step{cmp, cmp, cmp, cmp}, 1},
		{"two runs", []sorting.Step{cmp, cmp, swp, cmp}, 2},
		{"separated by settle", []sorting.Step{cmp, settle, cmp, settle, cmp}, 3},
		{"never active", []sorting.Step{swp, settle, swp}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComparisons()
			for _, s := range tt.steps {
				c.Observe(s)
			}
			if c.Count() != tt.want {
				t.Errorf("Count() = %d, want %d", c.Count(), tt.want)
			}
		})
	}
}

func TestEdgeCounterFired(t *testing.T) {
	c := NewSwaps()

	c.Observe(swp)
	if !c.Fired() {
		t.Error("expected first swap to fire")
	}
	c.Observe(swp)
	if c.Fired() {
		t.Error("expected second consecutive swap not to fire")
	}
	c.Observe(cmp)
	c.Observe(swp)
	if !c.Fired() {
		t.Error("expected swap after compare to fire")
	}
}

func TestEdgeCounterReset(t *testing.T) {
	c := NewComparisons()
	c.Observe(cmp)
	c.Reset()

	if c.Value() != 0 {
		t.Error("expected zero after reset")
	}

	// The previous active state must not carry across a reset.
	c.Observe(cmp)
	if c.Count() != 1 {
		t.Errorf("expected 1 after reset, got %d", c.Count())
	}
}

func TestProgress(t *testing.T) {
	p := NewProgress()
	if p.Value() != 0 {
		t.Error("expected zero before any step")
	}

	p.Observe(sorting.Step{Array: []int{3, 1, 2, 4}, Sorted: sorting.IndexSet{3}})
	if math.Abs(p.Value()-0.25) > 1e-9 {
		t.Errorf("expected 0.25, got %f", p.Value())
	}

	p.Observe(sorting.Step{Array: []int{}})
	if p.Value() != 1 {
		t.Errorf("expected empty array to count as sorted, got %f", p.Value())
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(NewComparisons(), NewSwaps(), NewStepCounter())
	for _, s := range []sorting.Step{cmp, swp, cmp, swp, settle} {
		c.Observe(s)
	}

	values := c.Values()
	if values["comparisons"] != 2 {
		t.Errorf("expected 2 comparisons, got %f", values["comparisons"])
	}
	if values["swaps"] != 2 {
		t.Errorf("expected 2 swaps, got %f", values["swaps"])
	}
	if values["steps"] != 5 {
		t.Errorf("expected 5 steps, got %f", values["steps"])
	}

	c.Reset()
	for name, v := range c.Values() {
		if v != 0 {
			t.Errorf("%s: expected 0 after reset, got %f", name, v)
		}
	}
}

func TestSummarizeBubble(t *testing.T) {
	seq, err := sorting.Run(sorting.KindBubble, []int{5, 3, 1})
	if err != nil {
		t.Fatal(err)
	}

	values := Summarize(seq)
	if values["comparisons"] != 3 {
		t.Errorf("expected 3 comparisons, got %f", values["comparisons"])
	}
	if values["swaps"] != 3 {
		t.Errorf("expected 3 swaps, got %f", values["swaps"])
	}
	if values["progress"] != 1 {
		t.Errorf("expected full progress, got %f", values["progress"])
	}
}

func TestSummarizeSortedInputCountsOneComparisonRun(t *testing.T) {
	seq, err := sorting.Run(sorting.KindBubble, []int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}

	values := Summarize(seq)
	if values["comparisons"] != 1 {
		t.Errorf("expected one contiguous comparison run, got %f", values["comparisons"])
	}
	if values["swaps"] != 0 {
		t.Errorf("expected no swaps, got %f", values["swaps"])
	}
}
