package session

import (
	"context"
	"iter"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Controller owns one visualization session: the working array, the
// highlighted positions, counters and pacing. All state is guarded by mu;
// the pacing loop and the elapsed-time clock are the only goroutines that
// mutate it besides the exported control methods.
type Controller struct {
	mu sync.Mutex

	st         State
	tick       time.Duration
	rng        *rand.Rand
	logger     *slog.Logger
	observers  []Observer
	counters   *metrics.Collector
	comparison *metrics.EdgeCounter
	swap       *metrics.EdgeCounter
	steps      *metrics.StepCounter

	gen        int
	cancel     context.CancelFunc
	done       chan struct{}
	startedAt  time.Time
	stopReason Outcome
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// New creates a stopped session with a freshly generated array. An unknown
// algorithm in cfg falls back to bubble sort.
func New(cfg Config, opts ...Option) *Controller {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	alg := cfg.Algorithm
	if _, err := sorting.Lookup(alg); err != nil {
		alg = sorting.KindBubble
	}
	speed := cfg.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	size := cfg.Size
	if size == 0 {
		size = DefaultSize
	}

	c := &Controller{
		tick:       tick,
		rng:        rand.New(rand.NewSource(seed)),
		logger:     logging.Discard(),
		comparison: metrics.NewComparisons(),
		swap:       metrics.NewSwaps(),
		steps:      metrics.NewStepCounter(),
		done:       closed(),
	}
	c.counters = metrics.NewCollector(c.comparison, c.swap, c.steps)
	for _, opt := range opts {
		opt(c)
	}

	c.st.Algorithm = alg
	c.st.Speed = clampSpeed(speed)
	c.st.Size = clampSize(size)
	c.regenerateLocked()
	return c
}

// AddObserver registers o for subsequent runs.
func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

// Done is closed when the most recently started run's loop has exited.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// SelectAlgorithm switches the engine used by the next Start. It is a
// no-op while running.
func (c *Controller) SelectAlgorithm(kind sorting.Kind) error {
	if _, err := sorting.Lookup(kind); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Running {
		return nil
	}
	c.st.Algorithm = kind
	return nil
}

// SetSpeed sets the pacing interval, clamped to [MinSpeed, MaxSpeed]. It
// is a no-op while running.
func (c *Controller) SetSpeed(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Running {
		return
	}
	c.st.Speed = clampSpeed(d)
}

// SetArraySize is Resize under the control-panel name.
func (c *Controller) SetArraySize(n int) { c.Resize(n) }

// Resize regenerates the array with n values, clamped to
// [MinSize, MaxSize], and resets the session. It is a no-op while running.
func (c *Controller) Resize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Running {
		return
	}
	c.st.Size = clampSize(n)
	c.regenerateLocked()
}

// Shuffle regenerates the array at the current size and resets the
// session. It is a no-op while running.
func (c *Controller) Shuffle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Running {
		return
	}
	c.regenerateLocked()
}

// SetArray replaces the working array with a copy of values, truncated to
// MaxSize, and resets the session. It is a no-op while running.
func (c *Controller) SetArray(values []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.Running {
		return
	}
	if len(values) > MaxSize {
		values = values[:MaxSize]
	}
	c.st.Array = append([]int{}, values...)
	c.st.Size = len(values)
	c.resetLocked()
}

// Start begins a fresh run of the selected algorithm over the current
// array. It is a no-op while a run is active. A run that was paused is not
// resumed: the new sequence starts from whatever the array looks like now.
//
// If a paused run's loop is still winding down, Start waits for it so that
// its final step and OnFinish are delivered before the new run begins.
func (c *Controller) Start(ctx context.Context) {
	if !c.lockIdle() {
		return
	}
	defer c.mu.Unlock()

	seq, err := sorting.Run(c.st.Algorithm, c.st.Array)
	if err != nil {
		c.logger.Error("start failed", "algorithm", c.st.Algorithm, "error", err)
		return
	}

	c.resetLocked()
	c.st.Running = true
	c.stopReason = ""
	c.startedAt = time.Now()
	c.gen++

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	c.logger.Info("run started",
		"algorithm", c.st.Algorithm,
		"size", len(c.st.Array),
		"speed", c.st.Speed,
	)

	go c.clock(runCtx, c.gen)
	go c.loop(runCtx, cancel, c.gen, seq, c.done)
}

// lockIdle acquires mu once no run is active and the previous loop has
// exited. It reports false, with mu released, if a run is active.
func (c *Controller) lockIdle() bool {
	for {
		c.mu.Lock()
		if c.st.Running {
			c.mu.Unlock()
			return false
		}
		prev := c.done
		select {
		case <-prev:
			return true
		default:
		}
		c.mu.Unlock()
		<-prev
	}
}

// Pause stops the active run at the next step boundary. Progress in the
// sequence is discarded; the array keeps its last applied state.
func (c *Controller) Pause() {
	c.stop(OutcomePaused)
}

// Reset stops any active run, waits for its loop to exit, then shuffles.
func (c *Controller) Reset() {
	if done := c.stop(OutcomeReset); done != nil {
		<-done
	}
	c.Shuffle()
}

func (c *Controller) stop(reason Outcome) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.Running {
		return nil
	}
	c.st.Running = false
	c.st.Elapsed = time.Since(c.startedAt)
	c.stopReason = reason
	c.cancel()
	return c.done
}

func (c *Controller) loop(ctx context.Context, cancel context.CancelFunc, gen int, seq sorting.Sequence, done chan struct{}) {
	defer close(done)
	defer cancel()

	next, stopSeq := iter.Pull(seq)
	defer stopSeq()

	exhausted := false
	for ctx.Err() == nil {
		step, ok := next()
		if !ok {
			exhausted = true
			break
		}

		ev, speed, live := c.apply(gen, step)
		if !live {
			break
		}
		c.notifyStep(ev)

		timer := time.NewTimer(speed)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	c.finish(gen, exhausted)
}

// apply installs step as the current session state in one critical
// section. It reports false if the run has been stopped.
func (c *Controller) apply(gen int, step sorting.Step) (Event, time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || !c.st.Running {
		return Event{}, 0, false
	}

	c.st.Array = step.Array
	c.st.Comparing = step.Comparing
	c.st.Swapping = step.Swapping
	c.st.Sorted = step.Sorted

	c.counters.Observe(step)
	c.st.Comparisons = c.comparison.Count()
	c.st.Swaps = c.swap.Count()
	c.st.Steps = c.steps.Count()

	ev := Event{
		Step:          step,
		State:         c.st.clone(),
		NewComparison: c.comparison.Fired(),
		NewSwap:       c.swap.Fired(),
	}
	return ev, c.st.Speed, true
}

func (c *Controller) finish(gen int, exhausted bool) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}

	var outcome Outcome
	switch {
	case exhausted:
		outcome = OutcomeComplete
		c.st.Complete = true
		c.st.Comparing = sorting.IndexSet{}
		c.st.Swapping = sorting.IndexSet{}
	case c.stopReason != "":
		outcome = c.stopReason
	default:
		outcome = OutcomeCanceled
	}
	if c.st.Running {
		c.st.Running = false
		c.st.Elapsed = time.Since(c.startedAt)
	}
	st := c.st.clone()
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()

	c.logger.Info("run finished",
		"algorithm", st.Algorithm,
		"outcome", outcome,
		"steps", st.Steps,
		"comparisons", st.Comparisons,
		"swaps", st.Swaps,
		"elapsed", st.Elapsed,
	)
	for _, o := range observers {
		o.OnFinish(st, outcome)
	}
}

// clock samples elapsed time on its own ticker so the displayed timer
// advances independently of the pacing interval.
func (c *Controller) clock(ctx context.Context, gen int) {
	t := time.NewTicker(c.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.mu.Lock()
			if gen == c.gen && c.st.Running {
				c.st.Elapsed = time.Since(c.startedAt)
			}
			c.mu.Unlock()
		}
	}
}

func (c *Controller) notifyStep(ev Event) {
	c.mu.Lock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()
	for _, o := range observers {
		o.OnStep(ev)
	}
}

func (c *Controller) regenerateLocked() {
	arr := make([]int, c.st.Size)
	for i := range arr {
		arr[i] = c.rng.Intn(MaxValue-MinValue+1) + MinValue
	}
	c.st.Array = arr
	c.resetLocked()
	c.logger.Debug("array generated", "size", len(arr))
}

func (c *Controller) resetLocked() {
	c.st.Comparing = sorting.IndexSet{}
	c.st.Swapping = sorting.IndexSet{}
	c.st.Sorted = sorting.IndexSet{}
	c.st.Complete = false
	c.st.Elapsed = 0
	c.st.Comparisons = 0
	c.st.Swaps = 0
	c.st.Steps = 0
	c.counters.Reset()
}

func closed() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// RecordTo returns an observer feeding r.
func RecordTo(r *metrics.Recorder) Observer {
	return ObserverFuncs{
		Step: func(ev Event) {
			r.ObserveStep(ev.State.Algorithm, ev.NewComparison, ev.NewSwap)
		},
		Finish: func(st State, outcome Outcome) {
			r.ObserveRun(st.Algorithm, string(outcome), st.Elapsed)
		},
	}
}
