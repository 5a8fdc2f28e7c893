package gaia

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/constants"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

var _ resolve.Identity = (*Client)(nil)

// DR2 parallaxes carry a known zero-point offset and a systematic
// uncertainty floor (Stassun & Torres 2018). Both are applied to every
// parallax read from the archive.
const (
	parallaxZeroPoint  = 0.082
	parallaxSystematic = 0.033
)

// paramFields are the gaia_source columns the stellar parameter query
// selects, in the order the archive is asked for them.
var paramFields = []string{
	"parallax", "parallax_error",
	"teff_val", "teff_percentile_lower", "teff_percentile_upper",
	"radius_val", "radius_percentile_lower", "radius_percentile_upper",
	"lum_val", "lum_percentile_lower", "lum_percentile_upper",
}

// neighbours lists the best-neighbour cross-match tables in the order
// they are consulted. GALEX has no neighbour table in the archive, so
// it never appears here and always resolves to the no-match sentinel.
var neighbours = []struct {
	table   string
	alias   string
	catalog catalogs.Name
}{
	{"tycho2", "tycho", catalogs.ASCC},
	{"panstarrs1", "ps", catalogs.PanSTARRS},
	{"sdssdr9", "sdss", catalogs.SDSS},
	{"allwise", "allwise", catalogs.Wise},
	{"tmass", "tmass", catalogs.TwoMASS},
	{"apassdr9", "apass", catalogs.APASS},
}

// Resolve identifies the target in the primary catalog and gathers its
// stellar parameters and cross-match identifiers.
func (c *Client) Resolve(ctx context.Context, t target.Target, radiusArcsec float64) (*resolve.Identification, error) {
	id := t.GaiaID
	if id == 0 {
		found, err := c.ConeSearch(ctx, t.Position, radiusArcsec)
		if err != nil {
			return nil, err
		}
		id = found
		logging.Ctx(ctx).Info().
			Int64("source_id", id).
			Msg("nearest source found by cone search")
	}

	params, warns, err := c.StellarParams(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := c.CrossMatches(ctx, id)
	if err != nil {
		return nil, err
	}

	return &resolve.Identification{
		SourceID:     id,
		Params:       params,
		CrossMatches: matches,
		Warnings:     warns,
	}, nil
}

// ConeSearch returns the source_id nearest to pos within radiusArcsec.
func (c *Client) ConeSearch(ctx context.Context, pos target.Position, radiusArcsec float64) (int64, error) {
	radiusDeg := radiusArcsec / constants.ArcsecPerDegree
	adql := fmt.Sprintf(
		"SELECT TOP 1 source_id, DISTANCE(POINT('ICRS', ra, dec), POINT('ICRS', %.8f, %.8f)) AS dist "+
			"FROM gaiadr2.gaia_source "+
			"WHERE 1=CONTAINS(POINT('ICRS', ra, dec), CIRCLE('ICRS', %.8f, %.8f, %.8f)) "+
			"ORDER BY dist ASC",
		pos.RA, pos.Dec, pos.RA, pos.Dec, radiusDeg)

	rows, err := c.query(ctx, adql)
	if err != nil {
		return 0, err
	}
	if rows.Len() == 0 {
		return 0, errors.NewNotFoundError("source near", pos.String())
	}
	id, ok := rows.Int64(0, "source_id")
	if !ok {
		return 0, errors.NewParseError("json", service, "cone search row without source_id", nil)
	}
	return id, nil
}

// StellarParams retrieves parallax, effective temperature, radius and
// luminosity for a source. Missing parameters degrade to warnings, a
// missing source is an error.
func (c *Client) StellarParams(ctx context.Context, sourceID int64) (target.StellarParams, []warning.Warning, error) {
	cols := make([]string, len(paramFields))
	for i, f := range paramFields {
		cols[i] = "gaia." + f
	}
	adql := fmt.Sprintf(
		"select %s from gaiadr2.gaia_source as gaia where gaia.source_id=%d",
		strings.Join(cols, ", "), sourceID)

	rows, err := c.query(ctx, adql)
	if err != nil {
		return target.StellarParams{}, nil, err
	}
	if rows.Len() == 0 {
		return target.StellarParams{}, nil,
			errors.NewNotFoundError("source", strconv.FormatInt(sourceID, 10))
	}

	var warns []warning.Warning
	params := target.StellarParams{
		Parallax:   parallaxParam(rows, &warns),
		Teff:       percentileParam(rows, "teff", &warns),
		Radius:     percentileParam(rows, "radius", &warns),
		Luminosity: percentileParam(rows, "lum", &warns),
	}
	return params, warns, nil
}

// parallaxParam applies the zero-point and systematic corrections. A
// masked or non-positive parallax is unusable and degrades to a
// warning.
func parallaxParam(rows *Rows, warns *[]warning.Warning) target.Param {
	plx, ok := rows.Float(0, "parallax")
	if !ok {
		*warns = append(*warns, warning.NewBadParallax("parallax is masked"))
		return target.Param{}
	}
	if plx <= 0 {
		*warns = append(*warns, warning.NewBadParallax(
			fmt.Sprintf("parallax %.4f mas is not positive", plx)))
		return target.Param{}
	}
	plxErr, _ := rows.Float(0, "parallax_error")
	return target.NewParam(
		plx+parallaxZeroPoint,
		math.Sqrt(plxErr*plxErr+parallaxSystematic*parallaxSystematic))
}

// percentileParam reads a value with percentile bounds, taking the
// larger one-sided distance as its uncertainty.
func percentileParam(rows *Rows, name string, warns *[]warning.Warning) target.Param {
	val, ok := rows.Float(0, name+"_val")
	if !ok {
		*warns = append(*warns, warning.NewMissingParameter(name))
		return target.Param{}
	}

	spread := 0.0
	if lo, ok := rows.Float(0, name+"_percentile_lower"); ok && val-lo > spread {
		spread = val - lo
	}
	if up, ok := rows.Float(0, name+"_percentile_upper"); ok && up-val > spread {
		spread = up - val
	}
	return target.NewParam(val, spread)
}

// CrossMatches asks the archive for the target's identifier in each
// photometric catalog through the best-neighbour tables.
func (c *Client) CrossMatches(ctx context.Context, sourceID int64) (catalogs.CrossMatches, error) {
	matches := catalogs.CrossMatches{}
	matches.Set(catalogs.Gaia, strconv.FormatInt(sourceID, 10))
	matches.Set(catalogs.GALEX, catalogs.NoMatch)

	for _, n := range neighbours {
		adql := fmt.Sprintf(
			"select original_ext_source_id from gaiadr2.gaia_source as gaia "+
				"join gaiadr2.%s_best_neighbour as %s on gaia.source_id=%s.source_id "+
				"where gaia.source_id=%d",
			n.table, n.alias, n.alias, sourceID)

		rows, err := c.query(ctx, adql)
		if err != nil {
			return nil, err
		}
		if rows.Len() == 0 {
			matches.Set(n.catalog, catalogs.NoMatch)
			logging.Ctx(ctx).Debug().
				Str("catalog", string(n.catalog)).
				Msg("no cross-match in neighbour table")
			continue
		}

		id, ok := rows.String(0, "original_ext_source_id")
		if !ok {
			matches.Set(n.catalog, catalogs.NoMatch)
			continue
		}
		matches.Set(n.catalog, id)
	}
	return matches, nil
}
