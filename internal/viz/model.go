package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

const (
	defaultWidth    = 100
	defaultHeight   = 28
	statsWidth      = 42
	historyCapacity = 600
	frameRate       = time.Second / 30

	speedStep = 50 * time.Millisecond
	sizeStep  = 5
)

type TickMsg time.Time

// ConfigMsg carries a reloaded configuration. The theme applies at once;
// speed and size follow the controller's idle-only rules.
type ConfigMsg struct {
	Config *config.Config
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model renders a session and forwards key presses to its controller. The
// controller owns all sorting state; the model only keeps view concerns.
type Model struct {
	ctx      context.Context
	ctrl     *session.Controller
	theme    Theme
	width    int
	height   int
	progress []float64
	showHelp bool
}

func NewModel(ctx context.Context, ctrl *session.Controller, theme string) Model {
	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		theme:    GetTheme(theme),
		width:    defaultWidth,
		height:   defaultHeight,
		progress: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Theme() Theme { return m.theme }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case ConfigMsg:
		m.applyConfig(msg.Config)
	case TickMsg:
		st := m.ctrl.Snapshot()
		if st.Running {
			m.record(st)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.ctrl.Snapshot()

	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Pause()
		return m, tea.Quit
	case " ":
		if st.Running {
			m.ctrl.Pause()
		} else {
			m.progress = m.progress[:0]
			m.ctrl.Start(m.ctx)
		}
	case "r":
		m.ctrl.Reset()
		m.progress = m.progress[:0]
	case "s":
		m.ctrl.Shuffle()
		m.progress = m.progress[:0]
	case "a":
		_ = m.ctrl.SelectAlgorithm(sorting.Next(st.Algorithm))
	case "+", "=":
		m.ctrl.SetSpeed(st.Speed - speedStep)
	case "-", "_":
		m.ctrl.SetSpeed(st.Speed + speedStep)
	case "]":
		m.ctrl.SetArraySize(st.Size + sizeStep)
	case "[":
		m.ctrl.SetArraySize(st.Size - sizeStep)
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.theme = GetTheme(cfg.Theme)
	m.ctrl.SetSpeed(cfg.Speed())
	if kind, err := sorting.ParseKind(cfg.Algorithm); err == nil {
		_ = m.ctrl.SelectAlgorithm(kind)
	}
	if cfg.Size != m.ctrl.Snapshot().Size {
		m.ctrl.Resize(cfg.Size)
	}
}

func (m *Model) record(st session.State) {
	m.progress = append(m.progress, sortedFraction(st))
	if len(m.progress) > historyCapacity {
		m.progress = m.progress[1:]
	}
}

func sortedFraction(st session.State) float64 {
	if len(st.Array) == 0 {
		return 1
	}
	return float64(st.Sorted.Len()) / float64(len(st.Array))
}

func status(st session.State) string {
	switch {
	case st.Running:
		return StatusRunning.Render("RUNNING")
	case st.Complete:
		return StatusComplete.Render("COMPLETE")
	case st.Steps > 0:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusPaused.Render("READY")
	}
}

func (m Model) View() string {
	st := m.ctrl.Snapshot()
	info, _ := sorting.InfoFor(st.Algorithm)

	barWidth := max(m.width-statsWidth-6, 10)
	barRows := max(m.height-4, 5)
	barsView := barsStyle.Render(renderBars(st, m.theme, barWidth, barRows))

	accent := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)

	var s strings.Builder
	s.WriteString(accent.Render(strings.ToUpper(info.Name)) + "\n")
	s.WriteString(Subtle.Render(info.Complexity) + "\n")
	s.WriteString(valueStyle.Render(info.Description) + "\n\n")
	s.WriteString(status(st) + "\n\n")

	s.WriteString(labelStyle.Render("Comparisons") + valueStyle.Render(fmt.Sprint(st.Comparisons)) + "\n")
	s.WriteString(labelStyle.Render("Swaps") + valueStyle.Render(fmt.Sprint(st.Swaps)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprint(st.Steps)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", st.Elapsed.Seconds())) + "\n")
	s.WriteString(labelStyle.Render("Delay") + valueStyle.Render(st.Speed.String()) + "\n")
	s.WriteString(labelStyle.Render("Size") + valueStyle.Render(fmt.Sprint(len(st.Array))) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n\n")

	s.WriteString(ProgressBar(sortedFraction(st), 24, m.theme.Sorted) + "\n")
	if len(m.progress) > 1 {
		chart := asciigraph.Plot(m.progress,
			asciigraph.Height(4),
			asciigraph.Width(26),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("sorted fraction"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Start/Pause R:Reset Q:Quit\nS:Shuffle A:Algo T:Theme ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, barsView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Start/Pause sorting      ║
║  R        - Reset with a new array   ║
║  S        - Shuffle                  ║
║  A        - Next algorithm           ║
║  + / -    - Faster / slower          ║
║  ] / [    - Larger / smaller array   ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
