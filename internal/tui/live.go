package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

const (
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	reset       = "\033[0m"
)

var glyphs = map[sorting.Role]struct {
	char  rune
	color string
}{
	sorting.RoleIdle:      {'|', "\033[36m"},
	sorting.RoleComparing: {'?', "\033[33m"},
	sorting.RoleSwapping:  {'x', "\033[31m"},
	sorting.RoleSorted:    {'#', "\033[32m"},
}

// LiveRenderer draws session steps as ANSI frames. It implements
// session.Observer and is driven from the session's pacing goroutine.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	color     bool
	lastFrame time.Time
	canvas    [][]rune
	roles     []sorting.Role
}

// NewLiveRenderer writes frames to out at most frameRate times per second;
// frameRate <= 0 draws every step.
func NewLiveRenderer(out io.Writer, frameRate int, color bool) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		color:     color,
	}
}

func (r *LiveRenderer) OnStep(ev session.Event) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()
	r.draw(ev.State)
	r.render(ev.State, "")
}

func (r *LiveRenderer) OnFinish(st session.State, outcome session.Outcome) {
	r.draw(st)
	r.render(st, string(outcome))
}

func (r *LiveRenderer) draw(st session.State) {
	n := len(st.Array)
	if len(r.canvas) != height || len(r.roles) != n {
		r.canvas = make([][]rune, height)
		for i := range r.canvas {
			r.canvas[i] = make([]rune, n)
		}
		r.roles = make([]sorting.Role, n)
	}

	maxVal := 1
	for _, v := range st.Array {
		maxVal = max(maxVal, v)
	}

	for i, v := range st.Array {
		role := sorting.RoleOf(i, st.Comparing, st.Swapping, st.Sorted)
		r.roles[i] = role
		h := 0
		if v > 0 {
			h = max((v*height+maxVal-1)/maxVal, 1)
		}
		for y := 0; y < height; y++ {
			if height-y <= h {
				r.canvas[y][i] = glyphs[role].char
			} else {
				r.canvas[y][i] = ' '
			}
		}
	}
}

func (r *LiveRenderer) render(st session.State, outcome string) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  t=%.1fs  delay=%s\n", st.Algorithm, st.Elapsed.Seconds(), st.Speed)
	b.WriteString("  " + strings.Repeat("-", len(st.Array)) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		for i, c := range row {
			if r.color && c != ' ' {
				b.WriteString(glyphs[r.roles[i]].color)
				b.WriteRune(c)
				b.WriteString(reset)
			} else {
				b.WriteRune(c)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", len(st.Array)) + "\n")
	fmt.Fprintf(&b, "  comparisons=%d swaps=%d steps=%d sorted=%d/%d\n",
		st.Comparisons, st.Swaps, st.Steps, st.Sorted.Len(), len(st.Array))
	if outcome != "" {
		fmt.Fprintf(&b, "  %s\n", outcome)
	}

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
