package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Brain Arcade: daily learning games for kids",
	Long: `Brain Arcade is a terminal arcade of daily learning games (Maths,
English Sentences, Art Story and Code Kids) with a weekly leaderboard.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "arcade.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ARCADE_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log mode: dev or prod")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = buildVersion()
}
