package cmd

import (
	"fmt"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/screens/entry"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game directly",
	Long: `Start a game for a player without going through the menus.

With --name the game starts immediately; without it the player entry form
opens pre-filled with the given subject and grade.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectVal, _ := cmd.Flags().GetString("subject")
		name, _ := cmd.Flags().GetString("name")
		grade, _ := cmd.Flags().GetInt("grade")

		subj, err := leaderboard.ParseSubject(subjectVal)
		if err != nil {
			return err
		}
		if grade < leaderboard.MinGrade || grade > leaderboard.MaxGrade {
			return fmt.Errorf("grade must be between %d and %d", leaderboard.MinGrade, leaderboard.MaxGrade)
		}

		return runApp(cmd, &entry.Prefill{
			Name:      name,
			Grade:     grade,
			Subject:   subj,
			Autostart: name != "",
		})
	},
}

func init() {
	playCmd.Flags().String("subject", string(leaderboard.SubjectMaths), "Subject: maths, english, art or code")
	playCmd.Flags().String("name", "", "Player name")
	playCmd.Flags().Int("grade", leaderboard.MinGrade, "Player grade")
}
