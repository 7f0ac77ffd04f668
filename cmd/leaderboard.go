package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"board"},
	Short:   "Print a weekly leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		subjectVal, _ := cmd.Flags().GetString("subject")
		week, _ := cmd.Flags().GetString("week")
		players, _ := cmd.Flags().GetBool("players")
		overall, _ := cmd.Flags().GetBool("overall")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		gate := e.gate(nil, nil)

		if overall {
			recs, err := gate.Overall(ctx)
			if err != nil {
				return fmt.Errorf("load overall board: %w", err)
			}
			fmt.Println("All subjects, all weeks")
			printRecords(recs, true)
			return nil
		}

		subj, err := leaderboard.ParseSubject(subjectVal)
		if err != nil {
			return err
		}
		if week == "" {
			week = leaderboard.WeekOf(gate.Now())
		} else {
			t, err := time.ParseInLocation("2006-01-02", week, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --week %q: want YYYY-MM-DD", week)
			}
			week = leaderboard.WeekOf(t)
		}
		board, err := gate.Board(ctx, subj, week)
		if err != nil {
			return fmt.Errorf("load board: %w", err)
		}

		fmt.Printf("%s, week of %s\n", subj.Label(), board.Week)
		if players {
			if len(board.Players) == 0 {
				fmt.Println("No players yet.")
				return nil
			}
			for _, name := range board.Players {
				fmt.Println(name)
			}
			return nil
		}
		printRecords(board.Leaders, false)
		return nil
	},
}

func printRecords(recs []leaderboard.Record, withSubject bool) {
	if len(recs) == 0 {
		fmt.Println("No scores yet.")
		return
	}

	headers := []string{"#", "Name", "Class", "Score", "Correct", "Avg s"}
	if withSubject {
		headers = append(headers, "Subject", "Week")
	}
	t := newTable(headers...)
	for i, r := range recs {
		rank := strconv.Itoa(i + 1)
		if i < leaderboard.ChampionCount {
			rank = "♛" + rank
		}
		row := []string{
			rank, truncate(r.Name, 20), strconv.Itoa(r.Grade), strconv.Itoa(r.Score),
			fmt.Sprintf("%d/%d", r.Correct, r.Attempted), fmt.Sprintf("%.1f", r.AvgSeconds()),
		}
		if withSubject {
			row = append(row, r.Subject.Label(), r.Week)
		}
		t.Row(row...)
	}
	lipgloss.Println(t)
}

func init() {
	leaderboardCmd.Flags().String("subject", string(leaderboard.SubjectMaths), "Subject: maths, english, art or code")
	leaderboardCmd.Flags().String("week", "", "Any date in the week (YYYY-MM-DD); defaults to this week")
	leaderboardCmd.Flags().Bool("players", false, "List this week's player names instead of scores")
	leaderboardCmd.Flags().Bool("overall", false, "Show the best records across all subjects and weeks")
}
