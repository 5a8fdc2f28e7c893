// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, alerts, and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: merged bands, completed lookups, passing validation.
	Success = "✓"

	// Error represents failures or fatal conditions.
	// Used for: failed lookups, unreachable archives, configuration errors.
	Error = "✗"

	// Warning represents non-fatal diagnostics.
	// Used for: masked cells, missing cross-matches, duplicate bands.
	Warning = "!"

	// Empty represents an unfilled slot or absent value.
	// Used for: vector slots no catalog claimed, masked parameters.
	Empty = "-"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized status, undefined behavior.
	Unknown = "?"

	// Info represents informational messages.
	// Used for: general information, tips, context.
	Info = "i"
)
