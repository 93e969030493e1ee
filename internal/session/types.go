package session

import (
	"time"

	"github.com/san-kum/sortviz/internal/sorting"
)

// Bounds applied to session configuration.
const (
	MinSize     = 5
	MaxSize     = 100
	DefaultSize = 30

	MinSpeed     = 10 * time.Millisecond
	MaxSpeed     = 1000 * time.Millisecond
	DefaultSpeed = 100 * time.Millisecond

	MinValue = 1
	MaxValue = 100

	DefaultTick = 100 * time.Millisecond
)

// ErrUnknownAlgorithm is returned when selecting an algorithm with no engine.
var ErrUnknownAlgorithm = sorting.ErrUnknownAlgorithm

type Config struct {
	Algorithm sorting.Kind
	Size      int
	Speed     time.Duration
	Seed      int64
	// Tick is the elapsed-time sampling interval.
	Tick time.Duration
}

func DefaultConfig() Config {
	return Config{
		Algorithm: sorting.KindBubble,
		Size:      DefaultSize,
		Speed:     DefaultSpeed,
		Tick:      DefaultTick,
	}
}

// State is a snapshot of the session for presentation.
type State struct {
	Array       []int
	Comparing   sorting.IndexSet
	Swapping    sorting.IndexSet
	Sorted      sorting.IndexSet
	Running     bool
	Complete    bool
	Elapsed     time.Duration
	Comparisons int
	Swaps       int
	Steps       int
	Speed       time.Duration
	Size        int
	Algorithm   sorting.Kind
}

func (s State) clone() State {
	c := s
	c.Array = append([]int(nil), s.Array...)
	c.Comparing = append(sorting.IndexSet(nil), s.Comparing...)
	c.Swapping = append(sorting.IndexSet(nil), s.Swapping...)
	c.Sorted = append(sorting.IndexSet(nil), s.Sorted...)
	return c
}

// Outcome says why a run's pacing loop exited.
type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomePaused   Outcome = "paused"
	OutcomeReset    Outcome = "reset"
	OutcomeCanceled Outcome = "canceled"
)

// Event describes one applied step.
type Event struct {
	Step          sorting.Step
	State         State
	NewComparison bool
	NewSwap       bool
}

// Observer is notified from the pacing goroutine, outside the session lock.
// Implementations must not call Reset, which waits for that goroutine.
type Observer interface {
	OnStep(ev Event)
	OnFinish(st State, outcome Outcome)
}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	Step   func(Event)
	Finish func(State, Outcome)
}

func (o ObserverFuncs) OnStep(ev Event) {
	if o.Step != nil {
		o.Step(ev)
	}
}

func (o ObserverFuncs) OnFinish(st State, outcome Outcome) {
	if o.Finish != nil {
		o.Finish(st, outcome)
	}
}

func clampSize(n int) int { return min(max(n, MinSize), MaxSize) }
func clampSpeed(d time.Duration) time.Duration { return min(max(d, MinSpeed), MaxSpeed) }
