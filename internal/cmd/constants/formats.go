// Package constants holds the output format spellings shared by CLI
// flags and formatters.
package constants

// Format names accepted by --output.
const (
	// FormatTable renders an aligned text table (the default).
	FormatTable = "table"

	// FormatWide renders the table with optional columns included.
	FormatWide = "wide"

	// FormatJSON emits indented JSON.
	FormatJSON = "json"

	// FormatYAML emits YAML.
	FormatYAML = "yaml"

	// FormatCSV emits comma-separated values.
	FormatCSV = "csv"
)
