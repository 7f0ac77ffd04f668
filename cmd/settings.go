package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/brainarcade/internal/leaderboard"
	"github.com/abhisek/brainarcade/internal/problemgen"
	"github.com/abhisek/brainarcade/internal/settings"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the teacher settings for a subject",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(m *settings.Manager, subj leaderboard.Subject) error {
			printSettings(m.Load(cmd.Context(), subj))
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings; out-of-range values are clamped",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(m *settings.Manager, subj leaderboard.Subject) error {
			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}
			s, err := m.Update(cmd.Context(), subj, patch)
			if err != nil {
				return err
			}
			printSettings(s)
			return nil
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSettings(cmd, func(m *settings.Manager, subj leaderboard.Subject) error {
			s, err := m.Reset(cmd.Context(), subj)
			if err != nil {
				return err
			}
			printSettings(s)
			return nil
		})
	},
}

func withSettings(cmd *cobra.Command, fn func(*settings.Manager, leaderboard.Subject) error) error {
	subjectVal, _ := cmd.Flags().GetString("subject")
	subj, err := leaderboard.ParseSubject(subjectVal)
	if err != nil {
		return err
	}
	e, err := openEnv(cmd, envOptions{})
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e.settings(), subj)
}

// intFlags maps flag names to the patch field they set.
var intFlags = []struct {
	name, usage string
	field       func(*settings.Patch) **int
}{
	{"count", "Questions per game", func(p *settings.Patch) **int { return &p.QuestionCount }},
	{"time", "Seconds per question", func(p *settings.Patch) **int { return &p.TimePerQuestion }},
	{"points", "Points for a correct answer", func(p *settings.Patch) **int { return &p.BasePoints }},
	{"penalty", "Points lost for a wrong answer", func(p *settings.Patch) **int { return &p.NegativePoints }},
	{"bonus-step", "Seconds saved per bonus step", func(p *settings.Patch) **int { return &p.BonusStepSeconds }},
	{"bonus", "Points per bonus step", func(p *settings.Patch) **int { return &p.BonusPerStep }},
	{"start-level", "Starting difficulty (maths)", func(p *settings.Patch) **int { return &p.StartDifficulty }},
	{"max-level", "Highest difficulty (maths)", func(p *settings.Patch) **int { return &p.MaxDifficulty }},
	{"streak-up", "Correct streak to level up (maths)", func(p *settings.Patch) **int { return &p.StreakToIncrease }},
	{"wrong-down", "Wrong answers in a row to level down (maths)", func(p *settings.Patch) **int { return &p.WrongToDecrease }},
}

func patchFromFlags(cmd *cobra.Command) (settings.Patch, error) {
	var p settings.Patch
	changed := false
	for _, f := range intFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, _ := cmd.Flags().GetInt(f.name)
		*f.field(&p) = &v
		changed = true
	}
	if cmd.Flags().Changed("topics") {
		raw, _ := cmd.Flags().GetStringSlice("topics")
		topics := make([]string, 0, len(raw))
		for _, t := range raw {
			t = strings.TrimSpace(t)
			if t == "all" {
				topics = nil
				break
			}
			if !problemgen.IsTopic(t) {
				return p, fmt.Errorf("unknown topic %q (known: %s)", t, strings.Join(problemgen.AllTopics, ", "))
			}
			topics = append(topics, t)
		}
		p.EnabledTopics = &topics
		changed = true
	}
	if !changed {
		return p, fmt.Errorf("nothing to change; see --help for the setting flags")
	}
	return p, nil
}

func printSettings(s settings.Settings) {
	fmt.Printf("%s settings\n", s.Subject().Label())
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("%-24s %d\n", "Questions per game", s.QuestionCount())
	fmt.Printf("%-24s %ds\n", "Time per question", s.TimePerQuestion())
	fmt.Printf("%-24s %d\n", "Points per correct", s.BasePoints())
	fmt.Printf("%-24s %d\n", "Penalty per wrong", s.NegativePoints())
	fmt.Printf("%-24s +%d every %ds saved\n", "Speed bonus", s.BonusPerStep(), s.BonusStepSeconds())
	if !s.Adaptive() {
		return
	}
	fmt.Printf("%-24s %d of %d\n", "Starting level", s.StartDifficulty(), s.MaxDifficulty())
	fmt.Printf("%-24s %d right to level up, %d wrong to level down\n", "Level changes",
		s.StreakToIncrease(), s.WrongToDecrease())
	topics := s.EnabledTopics()
	if len(topics) == 0 {
		fmt.Printf("%-24s all\n", "Topics")
		return
	}
	labels := make([]string, len(topics))
	for i, t := range topics {
		labels[i] = problemgen.TopicLabel(t)
	}
	fmt.Printf("%-24s %s\n", "Topics", strings.Join(labels, ", "))
}

func init() {
	settingsCmd.PersistentFlags().String("subject", string(leaderboard.SubjectMaths), "Subject: maths, english, art or code")

	for _, f := range intFlags {
		settingsSetCmd.Flags().Int(f.name, 0, f.usage)
	}
	settingsSetCmd.Flags().StringSlice("topics", nil, "Comma-separated maths topics, or \"all\"")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
