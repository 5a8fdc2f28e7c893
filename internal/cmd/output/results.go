// Package output provides common output formatting utilities for CLI commands.
package output

import (
	"os"

	"github.com/heliobs/magpie/internal/cmd/constants"
	"github.com/heliobs/magpie/internal/cmd/globals"
	"github.com/heliobs/magpie/internal/cmd/table"
	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/photometry"
)

// BandEntry is the structured form of one band registry row.
type BandEntry struct {
	Index int             `json:"index" yaml:"index"`
	Band  photometry.Band `json:"band" yaml:"band"`
}

// CatalogEntry is the structured form of one catalog schema row.
type CatalogEntry struct {
	Priority int      `json:"priority" yaml:"priority"`
	Name     string   `json:"name" yaml:"name"`
	VizierID string   `json:"vizier_id" yaml:"vizier_id"`
	Matcher  string   `json:"matcher" yaml:"matcher"`
	Bands    []string `json:"bands" yaml:"bands"`
}

// Bands handles the common pattern of formatting the band registry for output.
// This encapsulates the switch logic for different output formats.
func Bands(schemas *catalogs.Table, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = FromTable(table.BandsToTableData(photometry.Bands(), schemas))
	default:
		entries := make([]BandEntry, 0, photometry.Count())
		for i, band := range photometry.Bands() {
			entries = append(entries, BandEntry{Index: i, Band: band})
		}
		outputData = entries
	}

	return formatter.Format(os.Stdout, outputData)
}

// Catalogs handles the common pattern of formatting the schema table for output.
func Catalogs(schemas *catalogs.Table, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		wide := globalFlags.Output == constants.FormatWide
		outputData = FromTable(table.CatalogsToTableData(schemas.Schemas(), wide))
	default:
		list := schemas.Schemas()
		entries := make([]CatalogEntry, 0, len(list))
		for i, s := range list {
			bands := make([]string, len(s.Columns))
			for j, col := range s.Columns {
				bands[j] = string(col.Band)
			}
			entries = append(entries, CatalogEntry{
				Priority: i + 1,
				Name:     string(s.Name),
				VizierID: s.VizierID,
				Matcher:  s.Matcher.String(),
				Bands:    bands,
			})
		}
		outputData = entries
	}

	return formatter.Format(os.Stdout, outputData)
}

// Any handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func Any(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}
