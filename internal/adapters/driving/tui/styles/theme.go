// Package styles holds roster's palette and the lipgloss styles built on it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// Theme is a palette. Each colour has a light and a dark variant and
// lipgloss picks one from the terminal background.
type Theme struct {
	Accent  lipgloss.AdaptiveColor
	Heading lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Dim     lipgloss.AdaptiveColor
	Good    lipgloss.AdaptiveColor
	Caution lipgloss.AdaptiveColor
	Bad     lipgloss.AdaptiveColor
	Frame   lipgloss.AdaptiveColor
	Bar     lipgloss.AdaptiveColor
}

// DefaultTheme is teal and amber on warm greys.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.AdaptiveColor{Light: "#1F7A6E", Dark: "#2E9E8F"},
		Heading: lipgloss.AdaptiveColor{Light: "#A8641C", Dark: "#E0A458"},
		Text:    lipgloss.AdaptiveColor{Light: "#2B2825", Dark: "#E6E1DA"},
		Dim:     lipgloss.AdaptiveColor{Light: "#8A8680", Dark: "#7D7A75"},
		Good:    lipgloss.AdaptiveColor{Light: "#3E7F36", Dark: "#8CC084"},
		Caution: lipgloss.AdaptiveColor{Light: "#9A7400", Dark: "#F2CC60"},
		Bad:     lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#E5636F"},
		Frame:   lipgloss.AdaptiveColor{Light: "#C9C4BD", Dark: "#4A4744"},
		Bar:     lipgloss.AdaptiveColor{Light: "#ECE8E2", Dark: "#201E1C"},
	}
}

// Styles are the rendered roles the screens use.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	// Selected marks the highlighted list row.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	StatusBar lipgloss.Style
	// Panel frames a block such as the photo details.
	Panel lipgloss.Style
}

// NewStyles derives the styles from t, or from DefaultTheme when t is nil.
func NewStyles(t *Theme) *Styles {
	if t == nil {
		t = DefaultTheme()
	}
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:     t,
		Title:     fg(t.Accent).Bold(true),
		Subtitle:  fg(t.Heading).Bold(true),
		Normal:    fg(t.Text),
		Muted:     fg(t.Dim),
		Selected:  fg(t.Text).Background(t.Accent).Bold(true),
		Error:     fg(t.Bad),
		Success:   fg(t.Good),
		Warning:   fg(t.Caution),
		StatusBar: fg(t.Dim).Background(t.Bar).Padding(0, 1),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Frame).
			Padding(0, 1),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles came from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Permission colours a permission state: granted is good, denied is bad
// and undecided is dimmed.
func (s *Styles) Permission(state domain.PermissionState) lipgloss.Style {
	switch state {
	case domain.PermissionGranted:
		return s.Success
	case domain.PermissionDenied:
		return s.Error
	default:
		return s.Muted
	}
}
