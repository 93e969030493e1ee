package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/sorting"
)

// Theme defines the bar and panel colors for the TUI.
type Theme struct {
	Name       string
	Idle       lipgloss.Color
	Comparing  lipgloss.Color
	Swapping   lipgloss.Color
	Sorted     lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Idle:       lipgloss.Color("#00d4ff"),
		Comparing:  lipgloss.Color("#ffe600"),
		Swapping:   lipgloss.Color("#ff2a6d"),
		Sorted:     lipgloss.Color("#05ffa1"),
		Accent:     lipgloss.Color("#ff00ff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Idle:       lipgloss.Color("#00aa00"),
		Comparing:  lipgloss.Color("#ccff66"),
		Swapping:   lipgloss.Color("#ffffff"),
		Sorted:     lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Idle:       lipgloss.Color("#cccccc"),
		Comparing:  lipgloss.Color("#0088ff"),
		Swapping:   lipgloss.Color("#ff0000"),
		Sorted:     lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Idle:       lipgloss.Color("#0077be"),
		Comparing:  lipgloss.Color("#ffd700"),
		Swapping:   lipgloss.Color("#ff4444"),
		Sorted:     lipgloss.Color("#00ff88"),
		Accent:     lipgloss.Color("#00a8cc"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Idle:       lipgloss.Color("#ff9ff3"),
		Comparing:  lipgloss.Color("#feca57"),
		Swapping:   lipgloss.Color("#ff4757"),
		Sorted:     lipgloss.Color("#5fd068"),
		Accent:     lipgloss.Color("#ff6b6b"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) color(r sorting.Role) lipgloss.Color {
	switch r {
	case sorting.RoleComparing:
		return t.Comparing
	case sorting.RoleSwapping:
		return t.Swapping
	case sorting.RoleSorted:
		return t.Sorted
	default:
		return t.Idle
	}
}

// Palette converts the theme for SVG export.
func (t Theme) Palette() export.Palette {
	return export.Palette{
		Background: string(t.Background),
		Idle:       string(t.Idle),
		Comparing:  string(t.Comparing),
		Swapping:   string(t.Swapping),
		Sorted:     string(t.Sorted),
	}
}
