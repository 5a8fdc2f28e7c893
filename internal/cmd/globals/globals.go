// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"github.com/spf13/cobra"

	"github.com/heliobs/magpie/internal/cmd/constants"
)

// Flags holds global common flags across all commands.
type Flags struct {
	Output  string
	Quiet   bool
	Verbose bool
	NoColor bool
}

// AddFlags registers the persistent flags every command shares.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVarP(&flags.Output, "output", "o", "",
		"Output format: "+constants.FormatTable+", "+constants.FormatJSON+", "+
			constants.FormatYAML+", "+constants.FormatCSV+", "+constants.FormatWide)
	// --format works as a hidden alias for --output
	pf.StringVar(&flags.Output, "format", "", "")
	_ = pf.MarkHidden("format")

	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Minimal output")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose output")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	return flags
}

// Parse reads the persistent flag values from anywhere in the command
// tree. Subcommands use it when the flags struct was not handed down.
func Parse(cmd *cobra.Command) (*Flags, error) {
	pf := cmd.Root().PersistentFlags()

	output, _ := pf.GetString("output")
	quiet, _ := pf.GetBool("quiet")
	verbose, _ := pf.GetBool("verbose")
	noColor, _ := pf.GetBool("no-color")

	return &Flags{
		Output:  output,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
	}, nil
}
