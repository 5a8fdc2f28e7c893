package catalogs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/photometry"
)

func TestBuiltinTable(t *testing.T) {
	tbl := catalogs.Builtin()

	t.Run("priority order", func(t *testing.T) {
		want := []catalogs.Name{
			catalogs.ASCC,
			catalogs.APASS,
			catalogs.Wise,
			catalogs.PanSTARRS,
			catalogs.Gaia,
			catalogs.TwoMASS,
			catalogs.SDSS,
			catalogs.GALEX,
		}
		assert.Equal(t, want, tbl.Names())
		assert.Equal(t, 8, tbl.Len())
	})

	t.Run("archive table keys", func(t *testing.T) {
		want := []string{
			"I/280B/ascc",
			"II/336/apass9",
			"II/328/allwise",
			"II/349/ps1",
			"I/345/gaia2",
			"II/246/out",
			"V/147/sdss12",
			"II/312/ais",
		}
		assert.Equal(t, want, tbl.VizierIDs())
	})

	t.Run("every column references a registered band", func(t *testing.T) {
		for _, s := range tbl.Schemas() {
			require.NoError(t, s.Validate(), "schema %s", s.Name)
			for _, col := range s.Columns {
				assert.True(t, photometry.Valid(col.Band),
					"%s: band %s", s.Name, col.Band)
			}
		}
	})

	t.Run("lookup by name", func(t *testing.T) {
		s, ok := tbl.Get(catalogs.APASS)
		require.True(t, ok)
		assert.Equal(t, "II/336/apass9", s.VizierID)
		require.Len(t, s.Columns, 5)
		assert.Equal(t, "Vmag", s.Columns[0].Mag)
		assert.Equal(t, photometry.JohnsonV, s.Columns[0].Band)
		assert.Equal(t, "g_mag", s.Columns[2].Mag)
		assert.Equal(t, photometry.SDSSg, s.Columns[2].Band)

		_, ok = tbl.Get("Hipparcos")
		assert.False(t, ok)
	})

	t.Run("gaia uses a designation template", func(t *testing.T) {
		s, ok := tbl.Get(catalogs.Gaia)
		require.True(t, ok)
		assert.Contains(t, s.Matcher.String(), "DR2Name")
	})

	t.Run("ascc uses the tycho composite", func(t *testing.T) {
		s, ok := tbl.Get(catalogs.ASCC)
		require.True(t, ok)
		assert.Contains(t, s.Matcher.String(), "TYC1")
	})
}

func TestNewTableValidation(t *testing.T) {
	valid := catalogs.Schema{
		Name:     "Test",
		VizierID: "X/1/test",
		Matcher:  catalogs.MatchColumn("id"),
		Columns: []catalogs.Column{
			{Mag: "Vmag", Err: "e_Vmag", Band: photometry.JohnsonV},
		},
	}

	t.Run("valid schema passes", func(t *testing.T) {
		tbl, err := catalogs.NewTable(valid)
		require.NoError(t, err)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("unknown band is fatal", func(t *testing.T) {
		bad := valid
		bad.Columns = []catalogs.Column{
			{Mag: "Qmag", Err: "e_Qmag", Band: "NOT_A_BAND"},
		}
		_, err := catalogs.NewTable(bad)
		require.Error(t, err)
		assert.True(t, errors.IsUnknownBand(err))
	})

	t.Run("duplicate catalog name", func(t *testing.T) {
		_, err := catalogs.NewTable(valid, valid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared twice")
	})

	t.Run("missing matcher", func(t *testing.T) {
		bad := valid
		bad.Matcher = nil
		_, err := catalogs.NewTable(bad)
		require.Error(t, err)
	})

	t.Run("missing archive key", func(t *testing.T) {
		bad := valid
		bad.VizierID = ""
		_, err := catalogs.NewTable(bad)
		require.Error(t, err)
	})

	t.Run("no columns", func(t *testing.T) {
		bad := valid
		bad.Columns = nil
		_, err := catalogs.NewTable(bad)
		require.Error(t, err)
	})

	t.Run("incomplete column pair", func(t *testing.T) {
		bad := valid
		bad.Columns = []catalogs.Column{{Mag: "Vmag", Band: photometry.JohnsonV}}
		_, err := catalogs.NewTable(bad)
		require.Error(t, err)
	})
}

func TestCrossMatches(t *testing.T) {
	cm := catalogs.CrossMatches{}
	cm.Set(catalogs.APASS, "1234")
	cm.Set(catalogs.GALEX, "")

	t.Run("present id", func(t *testing.T) {
		id, ok := cm.ID(catalogs.APASS)
		require.True(t, ok)
		assert.Equal(t, "1234", id)
	})

	t.Run("empty maps to no-match", func(t *testing.T) {
		_, ok := cm.ID(catalogs.GALEX)
		assert.False(t, ok)
		assert.Equal(t, catalogs.NoMatch, cm[catalogs.GALEX])
	})

	t.Run("absent catalog", func(t *testing.T) {
		_, ok := cm.ID(catalogs.SDSS)
		assert.False(t, ok)
	})

	t.Run("explicit sentinel", func(t *testing.T) {
		cm.Set(catalogs.Wise, catalogs.NoMatch)
		_, ok := cm.ID(catalogs.Wise)
		assert.False(t, ok)
	})
}
