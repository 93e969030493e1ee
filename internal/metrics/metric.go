package metrics

import "github.com/san-kum/sortviz/internal/sorting"

// Metric accumulates a value over the steps of one run.
type Metric interface {
	Name() string
	Observe(step sorting.Step)
	Value() float64
	Reset()
}

// Collector fans each step out to a fixed set of metrics.
type Collector struct {
	metrics []Metric
}

func NewCollector(ms ...Metric) *Collector {
	return &Collector{metrics: ms}
}

func (c *Collector) Add(m Metric) { c.metrics = append(c.metrics, m) }

func (c *Collector) Observe(step sorting.Step) {
	for _, m := range c.metrics {
		m.Observe(step)
	}
}

func (c *Collector) Reset() {
	for _, m := range c.metrics {
		m.Reset()
	}
}

func (c *Collector) Values() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Summarize runs every step of seq through a fresh default collector.
func Summarize(seq sorting.Sequence) map[string]float64 {
	c := NewCollector(NewComparisons(), NewSwaps(), NewStepCounter(), NewProgress())
	for step := range seq {
		c.Observe(step)
	}
	return c.Values()
}
