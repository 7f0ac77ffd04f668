// Package router keeps the TUI's screen stack. Screens never touch the
// stack directly; they return one of the navigation commands below.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brainarcade/internal/screen"
)

type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

// Push opens s above the current screen.
func Push(s screen.Screen) tea.Cmd { return send(PushScreenMsg{Screen: s}) }

// Replace swaps the current screen for s, e.g. game over to summary.
func Replace(s screen.Screen) tea.Cmd { return send(ReplaceScreenMsg{Screen: s}) }

// Back returns to the previous screen.
func Back() tea.Msg { return PopScreenMsg{} }

// Home unwinds to the main menu and refreshes it.
func Home() tea.Msg { return PopToRootMsg{} }

func send(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }

// Router is a stack of screens; the top one is active. The root is never
// popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to the
// active screen. Newly shown screens get their Init run; so does the root
// when the stack unwinds to it.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case ReplaceScreenMsg:
		r.stack[r.top()] = msg.Screen
		return msg.Screen.Init()
	case PopScreenMsg:
		if len(r.stack) > 1 {
			r.stack = r.stack[:r.top()]
		}
		return nil
	case PopToRootMsg:
		r.stack = r.stack[:1]
		return r.stack[0].Init()
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
