package catalogs

import (
	"github.com/heliobs/magpie/pkg/photometry"
)

// builtin holds the supported survey catalogs. Declaration order is
// merge priority: earlier catalogs win contested bands. The column
// names are the exact VizieR column headings of each table.
var builtin = MustNewTable(
	Schema{
		Name:     ASCC,
		VizierID: "I/280B/ascc",
		Matcher:  MatchComposite("TYC1", "TYC2", "TYC3"),
		Columns: []Column{
			{Mag: "Vmag", Err: "e_Vmag", Band: photometry.JohnsonV},
			{Mag: "Bmag", Err: "e_Bmag", Band: photometry.JohnsonB},
			{Mag: "Jmag", Err: "e_Jmag", Band: photometry.TwoMASSJ},
			{Mag: "Hmag", Err: "e_Hmag", Band: photometry.TwoMASSH},
			{Mag: "Kmag", Err: "e_Kmag", Band: photometry.TwoMASSKs},
		},
	},
	Schema{
		Name:     APASS,
		VizierID: "II/336/apass9",
		Matcher:  MatchColumn("recno"),
		Columns: []Column{
			{Mag: "Vmag", Err: "e_Vmag", Band: photometry.JohnsonV},
			{Mag: "Bmag", Err: "e_Bmag", Band: photometry.JohnsonB},
			{Mag: "g_mag", Err: "e_g_mag", Band: photometry.SDSSg},
			{Mag: "r_mag", Err: "e_r_mag", Band: photometry.SDSSr},
			{Mag: "i_mag", Err: "e_i_mag", Band: photometry.SDSSi},
		},
	},
	Schema{
		Name:     Wise,
		VizierID: "II/328/allwise",
		Matcher:  MatchColumn("AllWISE"),
		Columns: []Column{
			{Mag: "W1mag", Err: "e_W1mag", Band: photometry.WiseW1},
			{Mag: "W2mag", Err: "e_W2mag", Band: photometry.WiseW2},
		},
	},
	Schema{
		Name:     PanSTARRS,
		VizierID: "II/349/ps1",
		Matcher:  MatchColumn("objID"),
		Columns: []Column{
			{Mag: "gmag", Err: "e_gmag", Band: photometry.PS1g},
			{Mag: "rmag", Err: "e_rmag", Band: photometry.PS1r},
			{Mag: "imag", Err: "e_imag", Band: photometry.PS1i},
			{Mag: "zmag", Err: "e_zmag", Band: photometry.PS1z},
			{Mag: "ymag", Err: "e_ymag", Band: photometry.PS1y},
		},
	},
	Schema{
		Name:     Gaia,
		VizierID: "I/345/gaia2",
		Matcher:  MatchTemplate("DR2Name", "Gaia DR2 %s"),
		Columns: []Column{
			{Mag: "Gmag", Err: "e_Gmag", Band: photometry.GaiaG},
			{Mag: "BPmag", Err: "e_BPmag", Band: photometry.GaiaBP},
			{Mag: "RPmag", Err: "e_RPmag", Band: photometry.GaiaRP},
		},
	},
	Schema{
		Name:     TwoMASS,
		VizierID: "II/246/out",
		Matcher:  MatchColumn("_2MASS"),
		Columns: []Column{
			{Mag: "Jmag", Err: "e_Jmag", Band: photometry.TwoMASSJ},
			{Mag: "Hmag", Err: "e_Hmag", Band: photometry.TwoMASSH},
			{Mag: "Kmag", Err: "e_Kmag", Band: photometry.TwoMASSKs},
		},
	},
	Schema{
		Name:     SDSS,
		VizierID: "V/147/sdss12",
		Matcher:  MatchColumn("SDSS12"),
		Columns: []Column{
			{Mag: "umag", Err: "e_umag", Band: photometry.SDSSu},
			{Mag: "gmag", Err: "e_gmag", Band: photometry.SDSSg},
			{Mag: "rmag", Err: "e_rmag", Band: photometry.SDSSr},
			{Mag: "imag", Err: "e_imag", Band: photometry.SDSSi},
			{Mag: "zmag", Err: "e_zmag", Band: photometry.SDSSz},
		},
	},
	Schema{
		Name:     GALEX,
		VizierID: "II/312/ais",
		Matcher:  MatchColumn("objid"),
		Columns: []Column{
			{Mag: "FUV", Err: "e_FUV", Band: photometry.GalexFUV},
			{Mag: "NUV", Err: "e_NUV", Band: photometry.GalexNUV},
		},
	},
)

// Builtin returns the supported catalog schemas in merge priority
// order. The table is shared and must not be mutated.
func Builtin() *Table {
	return builtin
}
