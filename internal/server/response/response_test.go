package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	magpieErrors "github.com/heliobs/magpie/pkg/errors"
)

// TestSuccess tests the Success helper function.
func TestSuccess(t *testing.T) {
	data := map[string]string{"message": "success"}
	resp := Success(data)

	if resp.Data == nil {
		t.Error("expected Data to be set")
	}
	if resp.Error != nil {
		t.Error("expected Error to be nil")
	}
}

// TestFail tests the Fail helper function.
func TestFail(t *testing.T) {
	resp := Fail("TEST_ERROR", "Test error message", "Additional details")

	if resp.Data != nil {
		t.Error("expected Data to be nil")
	}
	if resp.Error == nil {
		t.Fatal("expected Error to be set")
	}
	if resp.Error.Code != "TEST_ERROR" {
		t.Errorf("expected Code=TEST_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Message != "Test error message" {
		t.Errorf("expected Message=Test error message, got %s", resp.Error.Message)
	}
	if resp.Error.Details != "Additional details" {
		t.Errorf("expected Details=Additional details, got %s", resp.Error.Details)
	}
}

// TestJSON tests the JSON helper function.
func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	resp := Success(map[string]string{"test": "data"})

	JSON(w, http.StatusOK, resp)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", contentType)
	}

	var decoded Response
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded.Data == nil {
		t.Error("expected decoded Data to be set")
	}
	if decoded.Error != nil {
		t.Error("expected decoded Error to be nil")
	}
}

// TestOK tests the OK helper function.
func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]int{"count": 42}

	OK(w, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

// TestBadRequest tests the BadRequest helper function.
func TestBadRequest(t *testing.T) {
	w := httptest.NewRecorder()

	BadRequest(w, "Invalid input", "Field 'ra' is required")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var decoded Response
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Error == nil {
		t.Fatal("expected Error to be set")
	}
	if decoded.Error.Code != "BAD_REQUEST" {
		t.Errorf("expected Code=BAD_REQUEST, got %s", decoded.Error.Code)
	}
}

// TestMethodNotAllowed tests the MethodNotAllowed helper function.
func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()

	MethodNotAllowed(w, http.MethodDelete)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}

	var decoded Response
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Error == nil {
		t.Fatal("expected Error to be set")
	}
	if decoded.Error.Details != "Method DELETE is not supported for this endpoint" {
		t.Errorf("unexpected Details: %s", decoded.Error.Details)
	}
}

// TestFromError tests mapping of typed errors to HTTP status codes.
func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error maps to 400",
			err:        magpieErrors.NewValidationError("ra", 420.0, "out of range"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "not found maps to 404",
			err:        magpieErrors.NewNotFoundError("source", "42"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "timeout maps to 504",
			err:        magpieErrors.NewTimeoutError("query", "60s", "vizier"),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "UPSTREAM_TIMEOUT",
		},
		{
			name: "unavailable archive maps to 502",
			err: &magpieErrors.APIError{
				Service:    "gaia",
				StatusCode: http.StatusServiceUnavailable,
				Message:    "maintenance",
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "unknown error maps to 500",
			err:        magpieErrors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			FromError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var decoded Response
			if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if decoded.Error == nil {
				t.Fatal("expected Error to be set")
			}
			if decoded.Error.Code != tt.wantCode {
				t.Errorf("expected Code=%s, got %s", tt.wantCode, decoded.Error.Code)
			}
		})
	}
}
