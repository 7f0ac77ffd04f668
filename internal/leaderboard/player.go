// Package leaderboard owns player identity, the weekly score records and
// the daily lock that keeps each player to one finished game per day.
package leaderboard

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Subject tags a game.
type Subject string

const (
	SubjectMaths   Subject = "maths"
	SubjectEnglish Subject = "english"
	SubjectArt     Subject = "art_story"
	SubjectCode    Subject = "code_kids"
)

// Subjects lists every game in menu order.
var Subjects = []Subject{SubjectMaths, SubjectEnglish, SubjectArt, SubjectCode}

// Label returns a display name.
func (s Subject) Label() string {
	switch s {
	case SubjectMaths:
		return "Maths"
	case SubjectEnglish:
		return "English Sentences"
	case SubjectArt:
		return "Art Story"
	case SubjectCode:
		return "Code Kids"
	default:
		return string(s)
	}
}

// ParseSubject accepts a subject tag or a short alias.
func ParseSubject(s string) (Subject, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "maths", "math":
		return SubjectMaths, nil
	case "english", "eng":
		return SubjectEnglish, nil
	case "art_story", "art":
		return SubjectArt, nil
	case "code_kids", "code":
		return SubjectCode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubject, s)
}

const (
	MinGrade = 1
	MaxGrade = 9
)

var (
	ErrNameRequired   = errors.New("name is required")
	ErrInvalidGrade   = errors.New("grade must be between 1 and 9")
	ErrUnknownSubject = errors.New("unknown subject")
)

// Player identifies who is playing which game.
type Player struct {
	Name    string
	Grade   int
	Subject Subject
}

// NewPlayer normalizes and validates a player identity.
func NewPlayer(name string, grade int, subject Subject) (Player, error) {
	p := Player{Name: NormalizeName(name), Grade: grade, Subject: subject}
	if p.Name == "" {
		return Player{}, ErrNameRequired
	}
	if grade < MinGrade || grade > MaxGrade {
		return Player{}, ErrInvalidGrade
	}
	if _, err := ParseSubject(string(subject)); err != nil {
		return Player{}, err
	}
	return p, nil
}

// Key returns the record key for the player in the given week.
func (p Player) Key(week string) Key {
	return Key{Name: p.Name, Grade: p.Grade, Subject: p.Subject, Week: week}
}

// NormalizeName trims and lower-cases a typed name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

const dateLayout = "2006-01-02"

// LocalDate formats t as a local calendar date.
func LocalDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// WeekOf returns the local date of the Monday on or before t.
func WeekOf(t time.Time) string {
	t = t.Local()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset).Format(dateLayout)
}
