// Package tui is the terminal front end of paperview.
package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#8BC34A")
	LightStripe     = lipgloss.Color("#eef0f3")
	LightMuted      = lipgloss.Color("#8a94a6")
	LightBorder     = lipgloss.Color("#dce0e5")

	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#8BC34A")
	DarkAccent     = lipgloss.Color("#8BC34A")
	DarkStripe     = lipgloss.Color("#1e2a3d")
	DarkMuted      = lipgloss.Color("#6b7a93")
	DarkBorder     = lipgloss.Color("#2a3850")

	Destructive = lipgloss.Color("#e53935")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Stripe     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Stripe:     LightStripe,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Stripe:     DarkStripe,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or PAPERVIEW_DARK_MODE=1,
// light otherwise.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}
	if os.Getenv("PAPERVIEW_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title       lipgloss.Style
	Count       lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	Focused     lipgloss.Style
	Selector    lipgloss.Style
	Active      lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Detail      lipgloss.Style

	Header  lipgloss.Style
	RowEven lipgloss.Style
	RowOdd  lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Count: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Focused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Selector: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Active: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Placeholder: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Detail: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		RowEven: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		RowOdd: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Stripe).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// TableStyles adapts the theme to the interactive table widget.
func (s Styles) TableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.Theme.Border).
		BorderBottom(true).
		Foreground(s.Theme.Primary).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Background(s.Theme.Primary).
		Bold(false)
	if s.Theme.IsDark {
		ts.Selected = ts.Selected.Foreground(lipgloss.Color("#101F38"))
	}
	return ts
}
