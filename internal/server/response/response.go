// Package response provides standardized HTTP response structures and
// helpers for the lookup API. All endpoints answer with a data field on
// success and an error field on failure, never both.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/heliobs/magpie/pkg/errors"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, encoding errors can only be dropped
	_ = json.NewEncoder(w).Encode(resp)
}

func fail(w http.ResponseWriter, status int, code, message, details string) {
	JSON(w, status, Fail(code, message, details))
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, details)
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	fail(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed",
		"Method "+method+" is not supported for this endpoint")
}

// InternalError writes a 500 error response without leaking the cause.
func InternalError(w http.ResponseWriter, _ error) {
	fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error",
		"An unexpected error occurred")
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	fail(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service unavailable", message)
}

// BadGateway writes a 502 error response for upstream archive failures.
func BadGateway(w http.ResponseWriter, message string) {
	fail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Archive request failed", message)
}

// GatewayTimeout writes a 504 error response.
func GatewayTimeout(w http.ResponseWriter, message string) {
	fail(w, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "Archive request timed out", message)
}

// FromError maps a resolution error to the HTTP response it deserves.
// Caller mistakes map to 4xx, archive trouble to 502/504, and anything
// unrecognized to 500.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsValidationError(err):
		BadRequest(w, err.Error(), "")
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case errors.IsTimeout(err):
		GatewayTimeout(w, err.Error())
	case errors.IsCatalogUnavailable(err):
		BadGateway(w, err.Error())
	default:
		InternalError(w, err)
	}
}
