package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/theme"
)

type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // a recorded game
	MascotAlert                     // nothing was recorded
)

// Badges the mascot holds, by stored subject id. Each is three cells wide.
var mascotBadges = map[string]string{
	"maths":     "1+2",
	"english":   "Abc",
	"art_story": "✿ ✎",
	"code_kids": "</>",
}

const defaultBadge = "A+✎"

type mascotLook struct {
	eyes, mouth, base string
	fg                color.Color
}

var mascotLooks = map[MascotVariant]mascotLook{
	MascotIdle:        {"◉ ◉", " ▽ ", "└─────┘", theme.Primary},
	MascotCelebrating: {"★ ★", " ▿ ", "└─╥═╥─┘\n  ╚═╝", theme.ArcadeYellow},
	MascotAlert:       {"◉ ◉", " ▽ ", "└─────┘", theme.Accent},
}

// RenderMascot draws the mascot holding the generic badge.
func RenderMascot(v MascotVariant) string {
	return RenderSubjectMascot(v, "")
}

// RenderSubjectMascot draws the mascot holding subject's badge.
func RenderSubjectMascot(v MascotVariant, subject string) string {
	look, ok := mascotLooks[v]
	if !ok {
		look = mascotLooks[MascotIdle]
	}
	badge, ok := mascotBadges[subject]
	if !ok {
		badge = defaultBadge
	}

	eyes := "│ " + look.eyes + " │"
	if v == MascotAlert {
		eyes += " !"
	}
	art := strings.Join([]string{
		"┌─────┐",
		eyes,
		"│ " + look.mouth + " │",
		"│ " + badge + " │",
		look.base,
	}, "\n")
	return lipgloss.NewStyle().Foreground(look.fg).Render(art)
}
