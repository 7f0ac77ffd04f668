// Package theme holds the cabinet palette and the few styles shared
// across screens.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Bright on a dark navy cabinet.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
	ArcadePink   = lipgloss.Color("#EC4899")
	ArcadeGreen  = lipgloss.Color("#84CC16")
)

// subjectAccent lights each game's tab in its own colour, keyed by the
// stored subject id.
var subjectAccent = map[string]color.Color{
	"maths":     ArcadeYellow,
	"english":   ArcadeCyan,
	"art_story": ArcadePink,
	"code_kids": ArcadeGreen,
}

// SubjectAccent falls back to ArcadeYellow for ids it does not know.
func SubjectAccent(id string) color.Color {
	if c, ok := subjectAccent[id]; ok {
		return c
	}
	return ArcadeYellow
}

// Tab renders one entry of a tab strip, lit with accent when active.
func Tab(label string, active bool, accent color.Color) string {
	s := lipgloss.NewStyle().Padding(0, 1).Foreground(TextDim)
	if active {
		s = s.Foreground(BgDark).Background(accent).Bold(true)
	}
	return s.Render(label)
}

// Answer feedback.
var (
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint      = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)
