package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestDefaultCORSConfig tests default CORS configuration.
func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()

	if config.AllowAll {
		t.Error("expected AllowAll to default to false")
	}
	if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
		t.Errorf("unexpected default origins: %v", config.AllowedOrigins)
	}
	if len(config.AllowedMethods) != 2 {
		t.Errorf("expected GET and OPTIONS only, got %v", config.AllowedMethods)
	}
}

// TestCORS tests the CORS middleware with various scenarios.
func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{
			name:       "allow all origins",
			config:     CORSConfig{AllowAll: true, AllowedMethods: []string{"GET"}},
			origin:     "https://example.com",
			wantOrigin: "*",
		},
		{
			name: "allowed origin is echoed",
			config: CORSConfig{
				AllowedOrigins: []string{"https://example.com"},
				AllowedMethods: []string{"GET"},
			},
			origin:     "https://example.com",
			wantOrigin: "https://example.com",
			wantVary:   true,
		},
		{
			name: "disallowed origin gets no header",
			config: CORSConfig{
				AllowedOrigins: []string{"https://example.com"},
				AllowedMethods: []string{"GET"},
			},
			origin:     "https://evil.example",
			wantOrigin: "",
		},
		{
			name:       "empty origin list allows all",
			config:     CORSConfig{AllowedMethods: []string{"GET"}},
			origin:     "https://example.com",
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected Allow-Origin=%q, got %q", tt.wantOrigin, got)
			}
			if tt.wantVary && w.Header().Get("Vary") != "Origin" {
				t.Error("expected Vary: Origin header")
			}
		})
	}
}

// TestCORS_PreflightShortCircuit tests that preflight requests don't
// reach the next handler.
func TestCORS_PreflightShortCircuit(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if called {
		t.Error("expected preflight to be answered without calling the handler")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 on preflight, got %d", w.Code)
	}
}

// TestIsOriginAllowed tests origin matching logic.
func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"exact match", "https://example.com", []string{"https://example.com"}, true},
		{"wildcard entry", "https://anything.example", []string{"*"}, true},
		{"no match", "https://evil.example", []string{"https://example.com"}, false},
		{"empty list", "https://example.com", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isOriginAllowed(tt.origin, tt.allowed); got != tt.want {
				t.Errorf("isOriginAllowed(%q, %v) = %v, want %v", tt.origin, tt.allowed, got, tt.want)
			}
		})
	}
}
