package leaderboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Asha ", "asha"},
		{"RAVI", "ravi"},
		{"", ""},
		{"\tMary Jane\n", "mary jane"},
	}
	for _, tt := range tests {
		got := NormalizeName(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if NormalizeName(got) != got {
			t.Errorf("NormalizeName not idempotent for %q", tt.in)
		}
	}
}

func TestNewPlayerValidation(t *testing.T) {
	tests := []struct {
		name    string
		player  string
		grade   int
		subject Subject
		wantErr error
	}{
		{"valid", " Asha ", 3, SubjectMaths, nil},
		{"blank name", "   ", 3, SubjectMaths, ErrNameRequired},
		{"grade zero", "asha", 0, SubjectMaths, ErrInvalidGrade},
		{"grade ten", "asha", 10, SubjectEnglish, ErrInvalidGrade},
		{"unknown subject", "asha", 4, Subject("chess"), ErrUnknownSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlayer(tt.player, tt.grade, tt.subject)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "asha", p.Name)
		})
	}
}

func TestParseSubjectAliases(t *testing.T) {
	for in, want := range map[string]Subject{
		"math": SubjectMaths, "Maths": SubjectMaths, "english": SubjectEnglish,
		"art": SubjectArt, "art_story": SubjectArt, "code": SubjectCode, "code_kids": SubjectCode,
	} {
		got, err := ParseSubject(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSubject("history")
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local), "2026-10-19"},  // Monday
		{time.Date(2026, 10, 22, 23, 0, 0, 0, time.Local), "2026-10-19"}, // Thursday
		{time.Date(2026, 10, 25, 12, 0, 0, 0, time.Local), "2026-10-19"}, // Sunday
		{time.Date(2026, 10, 26, 0, 1, 0, 0, time.Local), "2026-10-26"},  // next Monday
		{time.Date(2026, 11, 1, 8, 0, 0, 0, time.Local), "2026-10-26"},   // across month
	}
	for _, tt := range tests {
		if got := WeekOf(tt.day); got != tt.want {
			t.Errorf("WeekOf(%s) = %s, want %s", tt.day.Format(time.RFC3339), got, tt.want)
		}
	}
}

func TestLocalDate(t *testing.T) {
	assert.Equal(t, "2026-01-05", LocalDate(time.Date(2026, 1, 5, 23, 59, 0, 0, time.Local)))
}
