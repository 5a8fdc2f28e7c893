package app

import (
	"github.com/spf13/cobra"

	"github.com/heliobs/magpie/cmd/magpie/cmd"
)

// NewLookupCommand creates the lookup command with app dependencies.
func (a *App) NewLookupCommand() *cobra.Command {
	return cmd.NewLookupCommand(a)
}

// NewBandsCommand creates the bands command with app dependencies.
func (a *App) NewBandsCommand() *cobra.Command {
	return cmd.NewBandsCommand(a)
}

// NewCatalogsCommand creates the catalogs command with app dependencies.
func (a *App) NewCatalogsCommand() *cobra.Command {
	return cmd.NewCatalogsCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return cmd.NewServeCommand(a)
}

// NewVersionCommand creates the version command with app dependencies.
func (a *App) NewVersionCommand() *cobra.Command {
	return cmd.NewVersionCommand(a)
}

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.NewLookupCommand())
	rootCmd.AddCommand(a.NewServeCommand())

	// Registry commands
	rootCmd.AddCommand(a.NewBandsCommand())
	rootCmd.AddCommand(a.NewCatalogsCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}
