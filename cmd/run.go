package cmd

import (
	"github.com/abhisek/brainarcade/internal/app"
	"github.com/abhisek/brainarcade/internal/screens/entry"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the arcade",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

// runApp opens the environment and launches the TUI. play, when set, jumps
// straight to a game.
func runApp(cmd *cobra.Command, play *entry.Prefill) error {
	e, err := openEnv(cmd, envOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Deps: e.screenDeps(cmd.Context()),
		Play: play,
	})
}
