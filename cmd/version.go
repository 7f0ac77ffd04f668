package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/brainarcade/cmd.version=...".
var version = ""

// buildVersion prefers the linker-set version, then the module version
// recorded by `go install`, then "(devel)".
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the arcade version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("arcade", buildVersion())
	},
}
