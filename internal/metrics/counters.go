package metrics

import "github.com/san-kum/sortviz/internal/sorting"

// EdgeCounter counts transitions into an active state rather than active
// frames: a run of consecutive active steps counts once.
type EdgeCounter struct {
	name   string
	active func(sorting.Step) bool
	was    bool
	fired  bool
	count  int
}

func NewEdgeCounter(name string, active func(sorting.Step) bool) *EdgeCounter {
	return &EdgeCounter{name: name, active: active}
}

// NewComparisons counts discrete comparisons.
func NewComparisons() *EdgeCounter {
	return NewEdgeCounter("comparisons", func(s sorting.Step) bool { return !s.Comparing.Empty() })
}

// NewSwaps counts discrete exchanges and writes.
func NewSwaps() *EdgeCounter {
	return NewEdgeCounter("swaps", func(s sorting.Step) bool { return !s.Swapping.Empty() })
}

func (e *EdgeCounter) Name() string { return e.name }

func (e *EdgeCounter) Observe(step sorting.Step) {
	now := e.active(step)
	e.fired = now && !e.was
	if e.fired {
		e.count++
	}
	e.was = now
}

// Fired reports whether the last observed step incremented the counter.
func (e *EdgeCounter) Fired() bool { return e.fired }

func (e *EdgeCounter) Count() int { return e.count }

func (e *EdgeCounter) Value() float64 { return float64(e.count) }

func (e *EdgeCounter) Reset() {
	e.was = false
	e.fired = false
	e.count = 0
}

type StepCounter struct {
	count int
}

func NewStepCounter() *StepCounter { return &StepCounter{} }

func (s *StepCounter) Name() string              { return "steps" }
func (s *StepCounter) Observe(step sorting.Step) { s.count++ }
func (s *StepCounter) Count() int                { return s.count }
func (s *StepCounter) Value() float64            { return float64(s.count) }
func (s *StepCounter) Reset()                    { s.count = 0 }

// Progress is the fraction of positions already final in the latest step.
// An empty array counts as fully sorted.
type Progress struct {
	sorted int
	total  int
	seen   bool
}

func NewProgress() *Progress { return &Progress{} }

func (p *Progress) Name() string { return "progress" }

func (p *Progress) Observe(step sorting.Step) {
	p.sorted = step.Sorted.Len()
	p.total = len(step.Array)
	p.seen = true
}

func (p *Progress) Value() float64 {
	if !p.seen {
		return 0
	}
	if p.total == 0 {
		return 1
	}
	return float64(p.sorted) / float64(p.total)
}

func (p *Progress) Reset() {
	p.sorted = 0
	p.total = 0
	p.seen = false
}
