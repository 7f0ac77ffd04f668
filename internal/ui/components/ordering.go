package components

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brainarcade/internal/ui/theme"
)

// Ordering lets the player build a sequence from a shuffled pool. Number
// keys move a piece from the pool to the answer; Backspace undoes the
// last pick.
type Ordering struct {
	pieces []string
	picked []int
}

func NewOrdering(pieces []string) Ordering {
	return Ordering{pieces: slices.Clone(pieces)}
}

// Update handles picks and undo.
func (o Ordering) Update(msg tea.Msg) (Ordering, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch key := kmsg.String(); key {
	case "backspace":
		if len(o.picked) > 0 {
			o.picked = o.picked[:len(o.picked)-1]
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			o.pick(int(key[0] - '1'))
		}
	}
	return o, nil
}

// pick moves the n-th remaining pool piece to the answer.
func (o *Ordering) pick(n int) {
	pool := o.pool()
	if n < 0 || n >= len(pool) {
		return
	}
	o.picked = append(o.picked, pool[n])
}

// pool returns the indexes of pieces not yet picked, in presentation order.
func (o Ordering) pool() []int {
	var out []int
	for i := range o.pieces {
		if !slices.Contains(o.picked, i) {
			out = append(out, i)
		}
	}
	return out
}

// Order returns the picked pieces.
func (o Ordering) Order() []string {
	out := make([]string, len(o.picked))
	for i, idx := range o.picked {
		out[i] = o.pieces[idx]
	}
	return out
}

// Complete reports whether every piece has been picked.
func (o Ordering) Complete() bool {
	return len(o.picked) == len(o.pieces)
}

// View renders the answer line above the numbered pool.
func (o Ordering) View(sep string) string {
	var b strings.Builder
	answer := strings.Join(o.Order(), sep)
	if answer == "" {
		answer = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("(pick pieces with 1-9)")
	} else {
		answer = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(answer)
	}
	b.WriteString("Your answer: " + answer + "\n\n")

	item := lipgloss.NewStyle().Foreground(theme.Text)
	for n, idx := range o.pool() {
		b.WriteString(item.Render(fmt.Sprintf("  %d) %s", n+1, o.pieces[idx])))
		b.WriteString("\n")
	}
	return b.String()
}
