package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/heliobs/magpie/internal/server/middleware"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/photometry"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeService returns a canned result or error and records the targets
// it was asked about.
type fakeService struct {
	result *resolve.Result
	err    error
	calls  []target.Target
}

func (f *fakeService) Resolve(_ context.Context, t target.Target) (*resolve.Result, error) {
	f.calls = append(f.calls, t)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func fixtureResult(t target.Target) *resolve.Result {
	vec := photometry.NewVector()
	_, _ = vec.Merge(photometry.TwoMASSJ, 9.302, 0.026, "2MASS")
	_, _ = vec.Merge(photometry.JohnsonV, 10.935, 0.039, "ASCC")

	return &resolve.Result{
		Target:      t.WithGaiaID(3376241909848155520),
		SourceID:    3376241909848155520,
		Params:      target.StellarParams{Parallax: target.NewParam(2.347, 0.096)},
		Vector:      vec,
		Photometry:  vec.Measurements(),
		Warnings:    []warning.Warning{warning.NewNoCrossMatch("SDSS")},
		RetrievedAt: utc.Now(),
	}
}

func newTestServer(t *testing.T, svc *fakeService, mutate ...func(*Config)) *httptest.Server {
	t.Helper()

	cfg := DefaultConfig()
	cfg.RateLimit = 0
	for _, m := range mutate {
		m(&cfg)
	}

	srv, err := New(svc, cfg)
	require.NoError(t, err)
	t.Cleanup(srv.shutdownBackground)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded), "body: %s", body)
	return resp.StatusCode, decoded
}

func TestNew(t *testing.T) {
	t.Run("rejects nil service", func(t *testing.T) {
		_, err := New(nil, DefaultConfig())
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RateLimit = 0
		srv, err := New(&fakeService{}, cfg)
		require.NoError(t, err)
		assert.Equal(t, "dev", srv.version)
		assert.Equal(t, 8, srv.schemas.Len())
		assert.False(t, srv.StartTime().IsZero())
	})
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, &fakeService{})

	t.Run("healthz", func(t *testing.T) {
		status, body := getJSON(t, ts, "/healthz")
		assert.Equal(t, http.StatusOK, status)

		data := body["data"].(map[string]any)
		assert.Equal(t, "healthy", data["status"])
		assert.Equal(t, "magpie-api", data["service"])
	})

	t.Run("prefixed health alias", func(t *testing.T) {
		status, _ := getJSON(t, ts, "/api/v1/health")
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("ready", func(t *testing.T) {
		status, body := getJSON(t, ts, "/api/v1/ready")
		assert.Equal(t, http.StatusOK, status)

		data := body["data"].(map[string]any)
		assert.Equal(t, "ready", data["status"])
		assert.Equal(t, float64(8), data["catalogs"])
	})
}

func TestLookupEndpoint(t *testing.T) {
	t.Run("resolves and returns the result", func(t *testing.T) {
		svc := &fakeService{}
		svc.result = fixtureResult(target.New("J91.78400+23.91100", 91.784, 23.911))
		ts := newTestServer(t, svc)

		status, body := getJSON(t, ts, "/api/v1/lookup?ra=91.784&dec=23.911")
		require.Equal(t, http.StatusOK, status)

		require.Len(t, svc.calls, 1)
		assert.Equal(t, "J91.78400+23.91100", svc.calls[0].Name)
		assert.InDelta(t, 91.784, svc.calls[0].Position.RA, 1e-9)

		data := body["data"].(map[string]any)
		phot := data["photometry"].([]any)
		assert.Len(t, phot, 2)
		warns := data["warnings"].([]any)
		assert.Len(t, warns, 1)
	})

	t.Run("passes name and gaia id through", func(t *testing.T) {
		svc := &fakeService{}
		svc.result = fixtureResult(target.New("Vega", 279.23, 38.78))
		ts := newTestServer(t, svc)

		status, _ := getJSON(t, ts, "/api/v1/lookup?ra=279.23&dec=38.78&name=Vega&gaia_id=2095569964432433664")
		require.Equal(t, http.StatusOK, status)

		require.Len(t, svc.calls, 1)
		assert.Equal(t, "Vega", svc.calls[0].Name)
		assert.Equal(t, int64(2095569964432433664), svc.calls[0].GaiaID)
	})

	t.Run("missing coordinates are a client error", func(t *testing.T) {
		svc := &fakeService{}
		ts := newTestServer(t, svc)

		status, body := getJSON(t, ts, "/api/v1/lookup?ra=91.784")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Empty(t, svc.calls, "service must not be called")

		errObj := body["error"].(map[string]any)
		assert.Equal(t, "BAD_REQUEST", errObj["code"])
	})

	t.Run("malformed coordinate is a client error", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{})

		status, _ := getJSON(t, ts, "/api/v1/lookup?ra=ninety&dec=23.911")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("malformed gaia id is a client error", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{})

		status, _ := getJSON(t, ts, "/api/v1/lookup?ra=1&dec=2&gaia_id=abc")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown source maps to 404", func(t *testing.T) {
		svc := &fakeService{err: errors.NewNotFoundError("source near", "RA=1 Dec=2")}
		ts := newTestServer(t, svc)

		status, body := getJSON(t, ts, "/api/v1/lookup?ra=1&dec=2")
		assert.Equal(t, http.StatusNotFound, status)

		errObj := body["error"].(map[string]any)
		assert.Equal(t, "NOT_FOUND", errObj["code"])
	})

	t.Run("archive outage maps to 502", func(t *testing.T) {
		svc := &fakeService{err: errors.NewQueryError("gaia", "select 1",
			errors.NewAPIError("gaia", http.StatusServiceUnavailable, "maintenance"))}
		ts := newTestServer(t, svc)

		status, body := getJSON(t, ts, "/api/v1/lookup?ra=1&dec=2")
		assert.Equal(t, http.StatusBadGateway, status)

		errObj := body["error"].(map[string]any)
		assert.Equal(t, "UPSTREAM_ERROR", errObj["code"])
	})

	t.Run("post is rejected", func(t *testing.T) {
		ts := newTestServer(t, &fakeService{})

		resp, err := ts.Client().Post(ts.URL+"/api/v1/lookup?ra=1&dec=2", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestRegistryEndpoints(t *testing.T) {
	ts := newTestServer(t, &fakeService{})

	t.Run("bands lists the registry in vector order", func(t *testing.T) {
		status, body := getJSON(t, ts, "/api/v1/bands")
		require.Equal(t, http.StatusOK, status)

		data := body["data"].(map[string]any)
		assert.Equal(t, float64(photometry.Count()), data["count"])

		bands := data["bands"].([]any)
		require.Len(t, bands, photometry.Count())
		first := bands[0].(map[string]any)
		assert.Equal(t, float64(0), first["index"])
		assert.Equal(t, "2MASS_H", first["band"])
	})

	t.Run("catalogs lists schemas in priority order", func(t *testing.T) {
		status, body := getJSON(t, ts, "/api/v1/catalogs")
		require.Equal(t, http.StatusOK, status)

		data := body["data"].(map[string]any)
		catalogEntries := data["catalogs"].([]any)
		require.Len(t, catalogEntries, 8)

		first := catalogEntries[0].(map[string]any)
		assert.Equal(t, "ASCC", first["name"])
		assert.Equal(t, "I/280B/ascc", first["vizier_id"])
		assert.NotEmpty(t, first["matcher"])

		last := catalogEntries[7].(map[string]any)
		assert.Equal(t, "GALEX", last["name"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeService{})

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "magpie_photometry")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	ts := newTestServer(t, &fakeService{}, func(cfg *Config) {
		cfg.MetricsEnabled = false
	})

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, &fakeService{})

	t.Run("generated when absent", func(t *testing.T) {
		resp, err := ts.Client().Get(ts.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("echoed when provided", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		require.NoError(t, err)
		req.Header.Set(middleware.RequestIDHeader, "trace-me-42")

		resp, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "trace-me-42", resp.Header.Get(middleware.RequestIDHeader))
	})
}

func TestRateLimiting(t *testing.T) {
	ts := newTestServer(t, &fakeService{}, func(cfg *Config) {
		cfg.RateLimit = 2
	})

	var last int
	for i := 0; i < 3; i++ {
		resp, err := ts.Client().Get(ts.URL + "/healthz")
		require.NoError(t, err)
		resp.Body.Close()
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t, &fakeService{}, func(cfg *Config) {
		cfg.CORSEnabled = true
	})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestFaviconShortCircuit(t *testing.T) {
	ts := newTestServer(t, &fakeService{})

	resp, err := ts.Client().Get(ts.URL + "/favicon.ico")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
