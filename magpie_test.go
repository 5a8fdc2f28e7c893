package magpie

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/table"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

type fakeIdentity struct {
	ident *resolve.Identification
	err   error
	calls int
}

func (f *fakeIdentity) Resolve(_ context.Context, _ target.Target, _ float64) (*resolve.Identification, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ident, nil
}

type fakeQuerier struct {
	tables table.Set
	err    error
	calls  int
}

func (f *fakeQuerier) QueryRegion(_ context.Context, _ target.Position, _ float64) (table.Set, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tables, nil
}

func twoMASSTable(t *testing.T, id string) table.Set {
	t.Helper()
	tbl := table.New("II/246/out", "_2MASS", "Jmag", "e_Jmag", "Hmag", "e_Hmag", "Kmag", "e_Kmag")
	require.NoError(t, tbl.AppendRow(id, "9.302", "0.026", "8.742", "0.021", "8.631", "0.019"))
	return table.Set{"II/246/out": tbl}
}

func fakeCollaborators(t *testing.T) (*fakeIdentity, *fakeQuerier) {
	t.Helper()
	id := &fakeIdentity{ident: &resolve.Identification{
		SourceID: 3376241909848155520,
		Params: target.StellarParams{
			Parallax: target.NewParam(2.347, 0.096),
			Teff:     target.NewParam(5777, 124),
		},
		CrossMatches: catalogs.CrossMatches{catalogs.TwoMASS: "06070815+2354403"},
	}}
	return id, &fakeQuerier{tables: twoMASSTable(t, "06070815+2354403")}
}

func newTestClient(t *testing.T, opts ...Option) Client {
	t.Helper()
	identity, querier := fakeCollaborators(t)
	opts = append([]Option{
		WithCacheDisabled(),
		WithIdentity(identity),
		WithQuerier(querier),
	}, opts...)
	c, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_Defaults(t *testing.T) {
	c := newTestClient(t)
	assert.Equal(t, 8, c.Schemas().Len())
}

func TestNew_OptionValidation(t *testing.T) {
	identity, querier := fakeCollaborators(t)
	base := []Option{WithCacheDisabled(), WithIdentity(identity), WithQuerier(querier)}

	tests := []struct {
		name string
		opt  Option
	}{
		{"non-positive radius", WithSearchRadius(0)},
		{"nil schemas", WithSchemas(nil)},
		{"non-positive timeout", WithTimeout(0)},
		{"nil identity", WithIdentity(nil)},
		{"nil querier", WithQuerier(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(append(base, tt.opt)...)
			assert.Error(t, err)
		})
	}
}

func TestClient_Resolve(t *testing.T) {
	identity, querier := fakeCollaborators(t)
	c, err := New(WithCacheDisabled(), WithIdentity(identity), WithQuerier(querier))
	require.NoError(t, err)
	defer c.Close()

	res, err := c.Resolve(context.Background(), NewTarget("HD 42777", 91.784, 23.911))
	require.NoError(t, err)

	assert.Equal(t, int64(3376241909848155520), res.SourceID)
	assert.Equal(t, int64(3376241909848155520), res.Target.GaiaID)
	assert.InDelta(t, 2.347, res.Params.Parallax.Value, 1e-9)

	// The single matched catalog contributes its three bands, in
	// registry order.
	require.Len(t, res.Photometry, 3)
	assert.Equal(t, photometry.TwoMASSH, res.Photometry[0].Band)
	assert.Equal(t, photometry.TwoMASSJ, res.Photometry[1].Band)
	assert.Equal(t, photometry.TwoMASSKs, res.Photometry[2].Band)
	assert.Equal(t, "2MASS", res.Photometry[0].Source)
	assert.InDelta(t, 8.742, res.Photometry[0].Mag, 1e-9)

	// The seven unmatched catalogs each cost one warning.
	require.Len(t, res.Warnings, 7)
	for _, w := range res.Warnings {
		assert.Equal(t, warning.NoCrossMatch, w.Category)
	}

	assert.Equal(t, 1, identity.calls)
	assert.Equal(t, 1, querier.calls)
	assert.False(t, res.RetrievedAt.IsZero())
}

func TestClient_Lookup(t *testing.T) {
	c := newTestClient(t)

	res, err := c.Lookup(context.Background(), "HD 42777", 91.784, 23.911)
	require.NoError(t, err)
	assert.Equal(t, "HD 42777", res.Target.Name)
	assert.Len(t, res.Photometry, 3)
}

func TestClient_Lookup_InvalidTarget(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Lookup(context.Background(), "", 91.784, 23.911)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestClient_PhotometryDisabled(t *testing.T) {
	identity, querier := fakeCollaborators(t)
	c, err := New(
		WithCacheDisabled(),
		WithIdentity(identity),
		WithQuerier(querier),
		WithPhotometryDisabled(),
	)
	require.NoError(t, err)
	defer c.Close()

	res, err := c.Lookup(context.Background(), "HD 42777", 91.784, 23.911)
	require.NoError(t, err)

	assert.Empty(t, res.Photometry)
	assert.Equal(t, 0, querier.calls, "region query must be skipped")
	assert.InDelta(t, 5777, res.Params.Teff.Value, 1e-9)
}

func TestClient_WarningReporter(t *testing.T) {
	rec := warning.NewRecorder()
	c := newTestClient(t, WithWarningReporter(rec))

	_, err := c.Lookup(context.Background(), "HD 42777", 91.784, 23.911)
	require.NoError(t, err)

	// The live reporter sees the same warnings the result records.
	assert.Equal(t, 7, rec.Len())
	assert.Equal(t, 7, rec.CountBy(warning.NoCrossMatch))
}

func TestClient_Close(t *testing.T) {
	c := newTestClient(t)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close must be idempotent")
}

func TestClient_CachePath(t *testing.T) {
	identity, querier := fakeCollaborators(t)
	path := filepath.Join(t.TempDir(), "magpie.db")

	c, err := New(WithCachePath(path), WithIdentity(identity), WithQuerier(querier))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Lookup(context.Background(), "HD 42777", 91.784, 23.911)
	require.NoError(t, err)
}

func TestClient_Maintenance(t *testing.T) {
	identity, querier := fakeCollaborators(t)
	path := filepath.Join(t.TempDir(), "magpie.db")

	c, err := New(WithCachePath(path), WithIdentity(identity), WithQuerier(querier))
	require.NoError(t, err)

	require.NoError(t, c.MaintenanceOn())
	require.NoError(t, c.MaintenanceOn(), "restart must replace the running loop")
	require.NoError(t, c.MaintenanceOff())
	require.NoError(t, c.MaintenanceOn())
	require.NoError(t, c.Close(), "close must stop a running loop")
}

func TestClient_Maintenance_CacheDisabled(t *testing.T) {
	c := newTestClient(t)
	assert.Error(t, c.MaintenanceOn())
	assert.NoError(t, c.MaintenanceOff())
}
