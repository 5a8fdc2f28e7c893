// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/heliobs/magpie/internal/cmd/emoji"
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// VectorToTableData converts merged measurements to table format.
// The wide view walks the full band registry and includes the slots
// no catalog claimed; the default view lists filled slots only.
func VectorToTableData(measurements []photometry.Measurement, wide bool) Data {
	headers := []string{"#", "BAND", "MAG", "ERROR", "SOURCE"}
	alignment := []Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignLeft}

	if !wide {
		rows := make([][]string, 0, len(measurements))
		for _, m := range measurements {
			idx, err := photometry.IndexOf(m.Band)
			if err != nil {
				continue
			}
			rows = append(rows, measurementRow(idx, m))
		}
		return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
	}

	filled := make(map[photometry.Band]photometry.Measurement, len(measurements))
	for _, m := range measurements {
		filled[m.Band] = m
	}

	rows := make([][]string, 0, photometry.Count())
	for i, band := range photometry.Bands() {
		m, ok := filled[band]
		if !ok {
			rows = append(rows, []string{
				strconv.Itoa(i), string(band),
				emoji.Empty, emoji.Empty, emoji.Empty,
			})
			continue
		}
		rows = append(rows, measurementRow(i, m))
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}

func measurementRow(idx int, m photometry.Measurement) []string {
	return []string{
		strconv.Itoa(idx),
		string(m.Band),
		FormatMag(m.Mag),
		FormatMag(m.Err),
		m.Source,
	}
}

// ParamsToTableData converts stellar parameters to table format.
// Masked parameters render as empty markers rather than zeros.
func ParamsToTableData(p target.StellarParams) Data {
	rows := [][]string{
		paramRow("Parallax (mas)", p.Parallax),
		paramRow("Teff (K)", p.Teff),
		paramRow("Radius (Rsun)", p.Radius),
		paramRow("Luminosity (Lsun)", p.Luminosity),
	}
	return Data{
		Headers:         []string{"PARAMETER", "VALUE", "ERROR"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
}

func paramRow(label string, p target.Param) []string {
	if !p.Valid {
		return []string{label, emoji.Empty, emoji.Empty}
	}
	return []string{label, FormatValue(p.Value), FormatValue(p.Err)}
}

// WarningsToTableData converts resolution warnings to table format.
func WarningsToTableData(warnings []warning.Warning) Data {
	rows := make([][]string, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, []string{
			string(w.Category),
			string(w.Severity),
			orEmpty(w.Catalog),
			orEmpty(w.Subject),
			orEmpty(w.Detail),
		})
	}
	return Data{
		Headers: []string{"CATEGORY", "SEVERITY", "CATALOG", "SUBJECT", "DETAIL"},
		Rows:    rows,
	}
}

// FormatMag formats a magnitude or its uncertainty for display.
func FormatMag(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatValue formats a stellar parameter value with shortest-form precision.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func orEmpty(s string) string {
	if s == "" {
		return emoji.Empty
	}
	return s
}
