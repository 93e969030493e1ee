package session_test

import (
	"context"
	"slices"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

type recorder struct {
	mu       sync.Mutex
	events   []session.Event
	outcomes []session.Outcome
}

func (r *recorder) OnStep(ev session.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) OnFinish(_ session.State, o session.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) Events() []session.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func (r *recorder) Outcomes() []session.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.outcomes)
}

func (r *recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.outcomes = nil
}

func fastConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.Speed = session.MinSpeed
	cfg.Seed = 7
	cfg.Tick = 5 * time.Millisecond
	return cfg
}

var _ = Describe("Controller", func() {
	var (
		c   *session.Controller
		rec *recorder
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		rec = &recorder{}
		c = session.New(fastConfig(), session.WithObserver(rec))
	})

	AfterEach(func() {
		c.Pause()
		Eventually(c.Done()).Should(BeClosed())
	})

	steps := func() int { return c.Snapshot().Steps }

	Describe("initial state", func() {
		It("generates a bounded array with zero counters", func() {
			st := c.Snapshot()
			Expect(st.Array).To(HaveLen(session.DefaultSize))
			for _, v := range st.Array {
				Expect(v).To(BeNumerically(">=", session.MinValue))
				Expect(v).To(BeNumerically("<=", session.MaxValue))
			}
			Expect(st.Running).To(BeFalse())
			Expect(st.Complete).To(BeFalse())
			Expect(st.Comparisons).To(BeZero())
			Expect(st.Swaps).To(BeZero())
			Expect(st.Sorted).To(BeEmpty())
			Expect(st.Algorithm).To(Equal(sorting.KindBubble))
			Expect(st.Speed).To(Equal(session.MinSpeed))
		})

		It("is reproducible for a fixed seed", func() {
			other := session.New(fastConfig())
			Expect(other.Snapshot().Array).To(Equal(c.Snapshot().Array))
		})

		It("falls back to bubble sort for an unknown configured algorithm", func() {
			cfg := fastConfig()
			cfg.Algorithm = "bogo"
			Expect(session.New(cfg).Snapshot().Algorithm).To(Equal(sorting.KindBubble))
		})

		It("has a closed Done channel before any run", func() {
			Expect(c.Done()).To(BeClosed())
		})
	})

	Describe("configuration", func() {
		It("clamps the array size", func() {
			c.Resize(1)
			Expect(c.Snapshot().Size).To(Equal(session.MinSize))
			Expect(c.Snapshot().Array).To(HaveLen(session.MinSize))

			c.SetArraySize(1000)
			Expect(c.Snapshot().Array).To(HaveLen(session.MaxSize))
		})

		It("clamps the pacing interval", func() {
			c.SetSpeed(time.Microsecond)
			Expect(c.Snapshot().Speed).To(Equal(session.MinSpeed))

			c.SetSpeed(time.Minute)
			Expect(c.Snapshot().Speed).To(Equal(session.MaxSpeed))
		})

		It("rejects unknown algorithms at the boundary", func() {
			err := c.SelectAlgorithm("bogo")
			Expect(err).To(MatchError(sorting.ErrUnknownAlgorithm))
			Expect(c.Snapshot().Algorithm).To(Equal(sorting.KindBubble))

			Expect(c.SelectAlgorithm(sorting.KindMerge)).To(Succeed())
			Expect(c.Snapshot().Algorithm).To(Equal(sorting.KindMerge))
		})

		It("truncates oversized caller arrays", func() {
			c.SetArray(make([]int, session.MaxSize+10))
			Expect(c.Snapshot().Array).To(HaveLen(session.MaxSize))
		})

		It("resets counters on shuffle", func() {
			c.SetArray([]int{2, 1})
			c.Start(ctx)
			Eventually(c.Done()).Should(BeClosed())
			Expect(c.Snapshot().Steps).To(BeNumerically(">", 0))

			c.Shuffle()
			st := c.Snapshot()
			Expect(st.Steps).To(BeZero())
			Expect(st.Comparisons).To(BeZero())
			Expect(st.Complete).To(BeFalse())
			Expect(st.Sorted).To(BeEmpty())
		})
	})

	Describe("running", func() {
		It("sorts to completion and counts discrete operations", func() {
			c.SetArray([]int{5, 3, 1})
			c.Start(ctx)
			Eventually(c.Done()).Should(BeClosed())

			st := c.Snapshot()
			Expect(st.Complete).To(BeTrue())
			Expect(st.Running).To(BeFalse())
			Expect(st.Array).To(Equal([]int{1, 3, 5}))
			Expect(st.Sorted).To(Equal(sorting.IndexSet{0, 1, 2}))
			Expect(st.Comparisons).To(Equal(3))
			Expect(st.Swaps).To(Equal(3))
			Expect(st.Steps).To(Equal(7))
			Expect(rec.Outcomes()).To(Equal([]session.Outcome{session.OutcomeComplete}))
		})

		DescribeTable("every algorithm finishes sorted",
			func(kind sorting.Kind) {
				input := []int{9, 4, 7, 4, 1, 8, 2, 2}
				want := slices.Clone(input)
				slices.Sort(want)

				Expect(c.SelectAlgorithm(kind)).To(Succeed())
				c.SetArray(input)
				c.Start(ctx)
				Eventually(c.Done(), 5*time.Second).Should(BeClosed())

				st := c.Snapshot()
				Expect(st.Array).To(Equal(want))
				Expect(st.Sorted).To(Equal(sorting.RangeSet(len(input))))

				for _, ev := range rec.Events() {
					both := !ev.Step.Comparing.Empty() && !ev.Step.Swapping.Empty()
					Expect(both).To(BeFalse())
				}
			},
			Entry("bubble", sorting.KindBubble),
			Entry("quick", sorting.KindQuick),
			Entry("merge", sorting.KindMerge),
		)

		It("counts a contiguous run of comparisons once", func() {
			c.SetArray([]int{1, 2, 3, 4, 5})
			c.Start(ctx)
			Eventually(c.Done()).Should(BeClosed())

			st := c.Snapshot()
			Expect(st.Steps).To(Equal(11))
			Expect(st.Comparisons).To(Equal(1))
			Expect(st.Swaps).To(BeZero())
		})

		It("completes an empty merge run without steps", func() {
			Expect(c.SelectAlgorithm(sorting.KindMerge)).To(Succeed())
			c.SetArray(nil)
			c.Start(ctx)
			Eventually(c.Done()).Should(BeClosed())

			st := c.Snapshot()
			Expect(st.Complete).To(BeTrue())
			Expect(st.Steps).To(BeZero())
		})

		It("ignores Start while running", func() {
			c.Start(ctx)
			done := c.Done()
			c.Start(ctx)
			Expect(c.Done()).To(Equal(done))
		})

		It("ignores configuration changes while running", func() {
			c.Start(ctx)
			Expect(c.SelectAlgorithm(sorting.KindQuick)).To(Succeed())
			c.SetSpeed(500 * time.Millisecond)
			c.Resize(60)

			st := c.Snapshot()
			Expect(st.Algorithm).To(Equal(sorting.KindBubble))
			Expect(st.Speed).To(Equal(session.MinSpeed))
			Expect(st.Array).To(HaveLen(session.DefaultSize))
		})

		It("advances elapsed time on its own clock", func() {
			c.Start(ctx)
			Eventually(func() time.Duration { return c.Snapshot().Elapsed }).
				Should(BeNumerically(">", 0))
		})

		It("publishes events in step order", func() {
			c.SetArray([]int{4, 3, 2, 1})
			c.Start(ctx)
			Eventually(c.Done()).Should(BeClosed())

			events := rec.Events()
			Expect(events).To(HaveLen(c.Snapshot().Steps))
			for i, ev := range events {
				Expect(ev.State.Steps).To(Equal(i + 1))
			}
		})
	})

	Describe("pausing", func() {
		It("freezes the session at a step boundary", func() {
			c.Start(ctx)
			Eventually(steps).Should(BeNumerically(">=", 5))

			c.Pause()
			Eventually(c.Done()).Should(BeClosed())

			frozen := c.Snapshot()
			Expect(frozen.Running).To(BeFalse())
			Expect(frozen.Complete).To(BeFalse())
			Consistently(steps, 100*time.Millisecond, 10*time.Millisecond).Should(Equal(frozen.Steps))
			Expect(rec.Outcomes()).To(Equal([]session.Outcome{session.OutcomePaused}))
		})

		It("restarts with a fresh sequence over the progressed array", func() {
			c.Start(ctx)
			Eventually(steps, 5*time.Second).Should(BeNumerically(">=", 60))
			c.Pause()
			Eventually(c.Done()).Should(BeClosed())

			paused := c.Snapshot()
			Expect(paused.Sorted).NotTo(BeEmpty())

			rec.Clear()
			c.Start(ctx)
			Eventually(func() int { return len(rec.Events()) }).Should(BeNumerically(">=", 1))

			first := rec.Events()[0]
			Expect(first.Step.Array).To(Equal(paused.Array))
			Expect(first.Step.Sorted).To(BeEmpty())
			Expect(first.Step.Comparing).To(Equal(sorting.IndexSet{0, 1}))
			Expect(first.State.Steps).To(Equal(1))
		})
	})

	Describe("restarting right after a pause", func() {
		It("reports the paused run before the new one starts", func() {
			for range 20 {
				rec.Clear()
				c.Start(ctx)
				Eventually(steps).Should(BeNumerically(">=", 1))

				c.Pause()
				c.Start(ctx)
				c.Pause()
				Eventually(c.Done()).Should(BeClosed())

				Expect(rec.Outcomes()).To(Equal([]session.Outcome{
					session.OutcomePaused,
					session.OutcomePaused,
				}))

				events := rec.Events()
				for i := 1; i < len(events); i++ {
					n := events[i].State.Steps
					Expect(n == 1 || n == events[i-1].State.Steps+1).To(BeTrue(),
						"step %d of a stale run delivered after restart", n)
				}
			}
		})
	})

	Describe("resetting", func() {
		It("stops the run and starts over with a new array", func() {
			c.Start(ctx)
			Eventually(steps).Should(BeNumerically(">=", 3))

			c.Reset()
			Expect(c.Done()).To(BeClosed())

			st := c.Snapshot()
			Expect(st.Running).To(BeFalse())
			Expect(st.Steps).To(BeZero())
			Expect(st.Comparisons).To(BeZero())
			Expect(st.Sorted).To(BeEmpty())
			Expect(st.Array).To(HaveLen(session.DefaultSize))
			Expect(rec.Outcomes()).To(Equal([]session.Outcome{session.OutcomeReset}))
		})

		It("is safe when idle", func() {
			c.Reset()
			Expect(c.Snapshot().Running).To(BeFalse())
		})
	})

	Describe("cancellation", func() {
		It("stops when the parent context is canceled", func() {
			runCtx, cancel := context.WithCancel(ctx)
			c.Start(runCtx)
			Eventually(steps).Should(BeNumerically(">=", 1))

			cancel()
			Eventually(c.Done()).Should(BeClosed())
			Expect(c.Snapshot().Running).To(BeFalse())
			Expect(rec.Outcomes()).To(Equal([]session.Outcome{session.OutcomeCanceled}))
		})
	})

	Describe("prometheus recording", func() {
		It("mirrors steps and runs", func() {
			reg := prometheus.NewRegistry()
			c.AddObserver(session.RecordTo(metrics.NewRecorder(reg)))

			c.SetArray([]int{2, 1})
			c.Start(ctx)
			Eventually(c.Done()).Should(BeClosed())

			n, err := testutil.GatherAndCount(reg, "sortviz_runs_total", "sortviz_steps_total")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
		})
	})
})
