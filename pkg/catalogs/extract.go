package catalogs

import (
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/table"
	"github.com/heliobs/magpie/pkg/warning"
)

// Extract reads the schema's column pairs from the selected rows,
// validates each measurement, and merges the accepted ones into vec.
//
// Validation skips a single pair when its magnitude is masked, its
// uncertainty is masked, or its uncertainty is not strictly positive,
// each with a warning. A band already claimed by an earlier catalog
// raises a duplicate-band warning and abandons the schema's remaining
// pairs; duplicate mappings within one catalog signal a stale schema,
// so nothing after them is trusted.
//
// The only error return is an unregistered band reaching the merge,
// which means the schema bypassed validation.
func Extract(schema Schema, sel *table.Selection, vec *photometry.Vector, rep warning.Reporter) error {
	if rep == nil {
		rep = warning.Discard
	}

	for _, col := range schema.Columns {
		mag, ok := sel.First(col.Mag).Float()
		if !ok {
			rep.Report(warning.NewMaskedMagnitude(string(schema.Name), string(col.Band), col.Mag))
			continue
		}

		magErr, ok := sel.First(col.Err).Float()
		if !ok {
			rep.Report(warning.NewMaskedError(string(schema.Name), string(col.Band), col.Err))
			continue
		}

		if magErr <= 0 {
			rep.Report(warning.NewZeroError(string(schema.Name), string(col.Band), col.Err))
			continue
		}

		merged, err := vec.Merge(col.Band, mag, magErr, string(schema.Name))
		if err != nil {
			return err
		}
		if !merged {
			prior, _ := vec.At(col.Band)
			rep.Report(warning.NewDuplicateBand(string(schema.Name), string(col.Band), prior.Source))
			return nil
		}
	}
	return nil
}
