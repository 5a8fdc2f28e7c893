// Package cmd implements the magpie CLI subcommands. Commands receive
// their dependencies through the App interface rather than package
// globals, which keeps them testable with a fake app.
package cmd

import (
	"github.com/rs/zerolog"

	"github.com/heliobs/magpie"
)

// App defines the interface commands need from the application.
// This allows for better testability and decoupling from the full app.
type App interface {
	// Client returns the shared lookup client, creating it on first use.
	Client() (magpie.Client, error)

	// ClientWithOptions returns a new client layering custom options on
	// top of the configured defaults. The caller owns it and must close it.
	ClientWithOptions(opts ...magpie.Option) (magpie.Client, error)

	// Logger returns the application logger.
	Logger() *zerolog.Logger

	// Version information for the version command.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
