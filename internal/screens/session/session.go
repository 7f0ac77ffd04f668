// Package session is the in-game screen: one question at a time with a
// countdown, feedback after each answer and a quit confirmation.
package session

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/router"
	"github.com/abhisek/brainarcade/internal/screen"
	"github.com/abhisek/brainarcade/internal/screens/summary"
	sess "github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/ui/components"
	"github.com/abhisek/brainarcade/internal/ui/layout"
)

// SessionScreen implements screen.Screen for a started game.
type SessionScreen struct {
	game        *sess.Session
	choice      components.MultiChoice
	order       components.Ordering
	showingQuit bool
	leveledUp   bool
	finishing   bool
	errMsg      string
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.EscCapturer     = (*SessionScreen)(nil)
)

// New wraps a session on which Start has already succeeded.
func New(game *sess.Session) *SessionScreen {
	s := &SessionScreen{game: game}
	s.resetInput()
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return tickCmd()
}

func (s *SessionScreen) Title() string {
	return s.game.Subject().Label()
}

func (s *SessionScreen) CapturesEsc() bool { return true }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	st := s.game.State()
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Home"}}
	case s.showingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave game"},
			{Key: "N", Description: "Keep going"},
		}
	case st.Phase == sess.PhaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case st.Question != nil && st.Question.Format == problemgen.FormatOrdering:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Pick"},
			{Key: "Bksp", Description: "Undo"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{{Key: fmt.Sprintf("1-%d", max(len(s.choice.Options), 1)), Description: "Answer"}}
	hints = append(hints, layout.Hints(s.choice.Bindings()...)...)
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.finishing {
		return renderLoading(width, height)
	}
	if s.showingQuit {
		return renderQuitConfirm(width, height)
	}
	st := s.game.State()
	if st.Phase == sess.PhaseFeedback {
		return s.renderFeedback(st, width, height)
	}
	return s.renderQuestionView(st, width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick(time.Time(msg))

	case finishedMsg:
		return s.handleFinished(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTimerTick(now time.Time) (screen.Screen, tea.Cmd) {
	if s.finishing || s.errMsg != "" || s.game.State().Phase == sess.PhaseDone {
		return s, nil
	}
	// A timeout lands in feedback even under the quit dialog.
	s.game.Tick(now)
	return s, tickCmd()
}

func (s *SessionScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	s.finishing = false
	warning := ""
	if msg.Err != nil {
		warning = sess.UserMessage(msg.Err)
	}
	result := summary.New(msg.Result, warning)
	return s, router.Replace(result)
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, router.Home
	}
	if s.finishing {
		return s, nil
	}

	// Quit confirmation dialog. Leaving records nothing.
	if s.showingQuit {
		switch key {
		case "y", "Y":
			return s, router.Home
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.showingQuit = true
		return s, nil
	}

	switch s.game.State().Phase {
	case sess.PhaseFeedback:
		return s.next()
	case sess.PhaseActive:
		return s.handleAnswerKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleAnswerKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	q := s.game.State().Question
	if q == nil {
		return s, nil
	}

	if q.Format == problemgen.FormatOrdering {
		if msg.String() == "enter" {
			if !s.order.Complete() {
				return s, nil
			}
			return s.submit(sess.Answer{Order: s.order.Order()})
		}
		s.order, _ = s.order.Update(msg)
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submit(sess.Answer{Choice: s.choice.Choice()})
	}
	return s, nil
}

// submit scores the answer and shows feedback. A key that arrives after
// Tick scored the question is dropped.
func (s *SessionScreen) submit(a sess.Answer) (screen.Screen, tea.Cmd) {
	before := s.game.State().Tier
	if _, err := s.game.Submit(a); err == nil {
		s.leveledUp = s.game.State().Tier > before
	}
	return s, nil
}

// next leaves feedback for the next question, or records the game after
// the last one.
func (s *SessionScreen) next() (screen.Screen, tea.Cmd) {
	s.leveledUp = false
	if err := s.game.Next(context.Background()); err != nil {
		s.errMsg = sess.UserMessage(err)
		return s, nil
	}
	if s.game.State().Phase == sess.PhaseDone {
		return s.finish()
	}
	s.resetInput()
	return s, nil
}

func (s *SessionScreen) finish() (screen.Screen, tea.Cmd) {
	s.finishing = true
	game := s.game
	return s, func() tea.Msg {
		res, err := game.Finish(context.Background())
		return finishedMsg{Result: res, Err: err}
	}
}

// resetInput prepares the widget for the current question.
func (s *SessionScreen) resetInput() {
	q := s.game.State().Question
	if q == nil {
		return
	}
	if q.Format == problemgen.FormatOrdering {
		s.order = components.NewOrdering(q.Pieces)
		return
	}
	s.choice = components.NewMultiChoice(q.Choices)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
