package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsRegistered(t *testing.T) {
	sorted := Migrations.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "20240610000001", sorted[0].Name)
	assert.Equal(t, "create_weekly_leaderboard", sorted[0].Comment)
	assert.Equal(t, "20240612000001", sorted[1].Name)
	for _, m := range sorted {
		assert.NotNil(t, m.Up, m.Name)
		assert.NotNil(t, m.Down, m.Name)
	}
	assert.Contains(t, createWeeklyLeaderboardSQL, "UNIQUE (name, grade, subject, week)")
}
