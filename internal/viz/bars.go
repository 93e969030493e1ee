package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

// barHeight scales v to at most rows cells. Positive values always get at
// least one cell.
func barHeight(v, maxVal, rows int) int {
	if v <= 0 || maxVal <= 0 {
		return 0
	}
	h := (v*rows + maxVal - 1) / maxVal
	return min(max(h, 1), rows)
}

// renderBars draws one column per array position inside a box of the given
// width and row count, colored by role.
func renderBars(st session.State, t Theme, width, rows int) string {
	n := len(st.Array)
	if n == 0 {
		return Subtle.Render("(empty array)")
	}

	colWidth, gap := 1, ""
	if slot := width / n; slot >= 2 {
		colWidth, gap = slot-1, " "
	}

	maxVal := 1
	for _, v := range st.Array {
		maxVal = max(maxVal, v)
	}

	heights := make([]int, n)
	styles := make([]lipgloss.Style, n)
	for i, v := range st.Array {
		heights[i] = barHeight(v, maxVal, rows)
		role := sorting.RoleOf(i, st.Comparing, st.Swapping, st.Sorted)
		styles[i] = lipgloss.NewStyle().Foreground(t.color(role))
	}

	block := strings.Repeat("█", colWidth)
	blank := strings.Repeat(" ", colWidth)

	var sb strings.Builder
	for row := rows; row >= 1; row-- {
		for i := range st.Array {
			if i > 0 {
				sb.WriteString(gap)
			}
			if heights[i] >= row {
				sb.WriteString(styles[i].Render(block))
			} else {
				sb.WriteString(blank)
			}
		}
		if row > 1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
