package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/logger"
	"github.com/abhisek/brainarcade/internal/session"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/abhisek/brainarcade/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Deps are the services screens share.
type Deps struct {
	Gate     *leaderboard.Gate
	Settings *settings.Manager

	// Strategy builds the subject strategy for a new game.
	Strategy func(leaderboard.Subject) (session.Strategy, error)

	Logger *logger.Logger
}

// NewSession builds a session for subject with the saved settings.
func (d Deps) NewSession(ctx context.Context, subject leaderboard.Subject) (*session.Session, error) {
	strat, err := d.Strategy(subject)
	if err != nil {
		return nil, err
	}
	return session.New(session.Config{
		Strategy: strat,
		Settings: d.Settings.Load(ctx, subject),
		Gate:     d.Gate,
		Logger:   d.Logger,
	}), nil
}

// EscCapturer is an optional interface for screens that handle Esc
// themselves instead of letting the app pop them.
type EscCapturer interface {
	CapturesEsc() bool
}
