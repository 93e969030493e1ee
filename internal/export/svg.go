package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/sorting"
)

// Palette maps highlight roles to fill colors.
type Palette struct {
	Background string
	Idle       string
	Comparing  string
	Swapping   string
	Sorted     string
}

var DefaultPalette = Palette{
	Background: "#0a0a0a",
	Idle:       "#00d4ff",
	Comparing:  "#ffe600",
	Swapping:   "#ff2a6d",
	Sorted:     "#05ffa1",
}

func (p Palette) fill(r sorting.Role) string {
	switch r {
	case sorting.RoleComparing:
		return p.Comparing
	case sorting.RoleSwapping:
		return p.Swapping
	case sorting.RoleSorted:
		return p.Sorted
	default:
		return p.Idle
	}
}

// StepToSVG draws step as a bar chart using DefaultPalette.
func StepToSVG(step sorting.Step, width, height int) string {
	return DefaultPalette.StepToSVG(step, width, height)
}

// StepToSVG draws step as a bar chart. Bar heights are relative to the
// largest value in the array.
func (p Palette) StepToSVG(step sorting.Step, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, p.Background))

	n := len(step.Array)
	if n > 0 {
		maxVal := 1
		for _, v := range step.Array {
			maxVal = max(maxVal, v)
		}

		slot := float64(width) / float64(n)
		gap := min(slot*0.1, 2)
		for i, v := range step.Array {
			h := float64(max(v, 0)) / float64(maxVal) * float64(height)
			x := float64(i)*slot + gap/2
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, float64(height)-h, slot-gap, h, p.fill(step.Role(i))))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
