package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command with app dependencies.
func NewVersionCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the magpie CLI.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("magpie version %s\n", app.Version())
			fmt.Printf("commit: %s\n", app.Commit())
			fmt.Printf("built: %s\n", app.Date())
			fmt.Printf("built by: %s\n", app.BuiltBy())
			fmt.Printf("go version: %s\n", runtime.Version())
			fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
