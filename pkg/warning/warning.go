// Package warning defines the non-fatal diagnostics a resolution run
// accumulates. Warnings explain why vector slots stayed empty; they
// never abort a run and never alter merged values.
package warning

import (
	"fmt"

	"github.com/agentstation/utc"
)

// Category identifies the condition that produced a warning.
type Category string

// Warning categories.
const (
	// NoCrossMatch means the target has no counterpart in the catalog.
	NoCrossMatch Category = "no_cross_match"

	// CatalogUnavailable means the catalog returned no table for the
	// region or its rows could not be selected.
	CatalogUnavailable Category = "catalog_unavailable"

	// MaskedMagnitude means the selected row's magnitude cell is masked.
	MaskedMagnitude Category = "masked_magnitude"

	// MaskedError means the magnitude is present but its uncertainty
	// cell is masked.
	MaskedError Category = "masked_error"

	// ZeroError means the uncertainty is not strictly positive, which
	// downstream weighting cannot use.
	ZeroError Category = "zero_error"

	// DuplicateBand means an earlier catalog already claimed the band.
	DuplicateBand Category = "duplicate_band"

	// BadParallax means the parallax was missing or non-positive.
	BadParallax Category = "bad_parallax"

	// MissingParameter means a stellar parameter cell was masked.
	MissingParameter Category = "missing_parameter"
)

// Severity grades how much data a warning accounts for.
type Severity string

// Severity grades.
const (
	// SeverityBand marks the loss of a single band measurement.
	SeverityBand Severity = "band"

	// SeverityCatalog marks the loss of a catalog's remaining contribution.
	SeverityCatalog Severity = "catalog"

	// SeverityParam marks the loss of a single stellar parameter.
	SeverityParam Severity = "param"
)

// Warning is one non-fatal diagnostic. Catalog names the survey
// involved, and Subject the band, column, or parameter concerned;
// either may be empty when it does not apply.
type Warning struct {
	Category Category `json:"category" yaml:"category"`
	Severity Severity `json:"severity" yaml:"severity"`
	Catalog  string   `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Subject  string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Detail   string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Time     utc.Time `json:"time" yaml:"time"`
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	switch {
	case w.Catalog != "" && w.Subject != "":
		return fmt.Sprintf("%s [%s/%s]: %s", w.Category, w.Catalog, w.Subject, w.Detail)
	case w.Catalog != "":
		return fmt.Sprintf("%s [%s]: %s", w.Category, w.Catalog, w.Detail)
	case w.Subject != "":
		return fmt.Sprintf("%s [%s]: %s", w.Category, w.Subject, w.Detail)
	default:
		return fmt.Sprintf("%s: %s", w.Category, w.Detail)
	}
}

// NewNoCrossMatch reports that the identity service produced no
// counterpart identifier for the catalog.
func NewNoCrossMatch(catalog string) Warning {
	return Warning{
		Category: NoCrossMatch,
		Severity: SeverityCatalog,
		Catalog:  catalog,
		Detail:   "no cross-match identifier for target",
		Time:     utc.Now(),
	}
}

// NewCatalogUnavailable reports that the catalog's table was absent
// from the query response or could not be searched.
func NewCatalogUnavailable(catalog, detail string) Warning {
	return Warning{
		Category: CatalogUnavailable,
		Severity: SeverityCatalog,
		Catalog:  catalog,
		Detail:   detail,
		Time:     utc.Now(),
	}
}

// NewMaskedMagnitude reports a masked magnitude cell.
func NewMaskedMagnitude(catalog, band, column string) Warning {
	return Warning{
		Category: MaskedMagnitude,
		Severity: SeverityBand,
		Catalog:  catalog,
		Subject:  band,
		Detail:   fmt.Sprintf("magnitude column %s is masked", column),
		Time:     utc.Now(),
	}
}

// NewMaskedError reports a masked uncertainty cell.
func NewMaskedError(catalog, band, column string) Warning {
	return Warning{
		Category: MaskedError,
		Severity: SeverityBand,
		Catalog:  catalog,
		Subject:  band,
		Detail:   fmt.Sprintf("uncertainty column %s is masked", column),
		Time:     utc.Now(),
	}
}

// NewZeroError reports an uncertainty that is not strictly positive.
func NewZeroError(catalog, band, column string) Warning {
	return Warning{
		Category: ZeroError,
		Severity: SeverityBand,
		Catalog:  catalog,
		Subject:  band,
		Detail:   fmt.Sprintf("uncertainty column %s is not positive", column),
		Time:     utc.Now(),
	}
}

// NewDuplicateBand reports that an earlier catalog already claimed the
// band. The remainder of the reporting catalog is abandoned, so the
// severity is catalog-wide.
func NewDuplicateBand(catalog, band, priorSource string) Warning {
	detail := "band already merged"
	if priorSource != "" {
		detail = fmt.Sprintf("band already merged from %s", priorSource)
	}
	return Warning{
		Category: DuplicateBand,
		Severity: SeverityCatalog,
		Catalog:  catalog,
		Subject:  band,
		Detail:   detail,
		Time:     utc.Now(),
	}
}

// NewBadParallax reports a missing or non-positive parallax.
func NewBadParallax(detail string) Warning {
	return Warning{
		Category: BadParallax,
		Severity: SeverityParam,
		Subject:  "parallax",
		Detail:   detail,
		Time:     utc.Now(),
	}
}

// NewMissingParameter reports a masked stellar parameter.
func NewMissingParameter(param string) Warning {
	return Warning{
		Category: MissingParameter,
		Severity: SeverityParam,
		Subject:  param,
		Detail:   "parameter is masked in the archive row",
		Time:     utc.Now(),
	}
}
