package session

import (
	"errors"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/llm"
	"github.com/abhisek/brainarcade/internal/problemgen"
)

// UserMessage maps an error from starting or finishing a game to the one
// line shown to the player.
func UserMessage(err error) string {
	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, leaderboard.ErrNameRequired):
		return "Type your name or select from list"
	case errors.Is(err, leaderboard.ErrInvalidGrade):
		return "Class should be 1-9"
	case errors.Is(err, leaderboard.ErrAlreadyPlayed):
		return "You already played today! Come tomorrow"
	case errors.Is(err, problemgen.ErrGeneration),
		errors.As(err, &rateLimit),
		errors.As(err, &unavailable),
		errors.As(err, &invalid):
		return "AI failed. Try again."
	}
	return "Something went wrong. Try again."
}
