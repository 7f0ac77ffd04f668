package session

import (
	"time"

	sess "github.com/abhisek/brainarcade/internal/session"
)

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// finishedMsg carries the recorded result once Finish returns.
type finishedMsg struct {
	Result sess.Result
	Err    error
}
