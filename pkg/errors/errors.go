// Package errors provides custom error types for the magpie system.
// These errors enable programmatic error checking with errors.Is and
// carry enough context to tell a bad query from a bad configuration.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors for use with errors.Is. Each typed error below
// matches one of these through its Is method, so callers can test for
// a condition without naming the concrete type.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownBand        = errors.New("unknown filter band")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrTimeout            = errors.New("operation timed out")
	ErrCanceled           = errors.New("operation canceled")
)

// errText is the message to store for a wrapped error, empty when
// there is nothing to wrap.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// BandError reports a filter band that the registry does not define.
// It is raised during schema validation and during merge, and always
// indicates a configuration bug rather than a data problem.
type BandError struct {
	Band    string
	Catalog string
}

func (e *BandError) Error() string {
	if e.Catalog != "" {
		return fmt.Sprintf("unknown filter band %q in catalog %s", e.Band, e.Catalog)
	}
	return fmt.Sprintf("unknown filter band %q", e.Band)
}

func (e *BandError) Is(target error) bool { return target == ErrUnknownBand }

// NewBandError creates a BandError for band, with catalog naming where
// the reference came from. Catalog may be empty.
func NewBandError(band, catalog string) *BandError {
	return &BandError{Band: band, Catalog: catalog}
}

// APIError reports a failed HTTP exchange with a remote archive.
type APIError struct {
	Service    string // "gaia", "vizier"
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is reports catalog unavailability for 5xx statuses and for
// transport-level failures that never produced a status at all.
func (e *APIError) Is(target error) bool {
	if e.StatusCode >= 500 || e.StatusCode == 0 {
		return target == ErrCatalogUnavailable
	}
	return false
}

// NewAPIError creates an APIError for a response from service.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// QueryError reports a failure executing a query against an archive.
// Query holds the ADQL or constraint text that was submitted.
type QueryError struct {
	Service string
	Query   string
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query against %s failed: %s", e.Service, e.Message)
}

func (e *QueryError) Unwrap() error { return e.Err }

// NewQueryError creates a QueryError wrapping err.
func NewQueryError(service, query string, err error) *QueryError {
	return &QueryError{Service: service, Query: query, Message: errText(err), Err: err}
}

// NotFoundError reports a resource that does not exist: a target with
// no source near it, a catalog name outside the schema, a missing
// VizieR table.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a NotFoundError for the named resource.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports input that failed validation before any
// archive was contacted.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError creates a ValidationError for field, recording
// the rejected value.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError reports a bad or missing setting, with Component naming
// the subsystem that rejected it.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError for the named component.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports malformed data from an archive or a file. Line is
// 1-based and zero when unknown.
type ParseError struct {
	Format  string // "json", "tsv", "yaml", etc.
	Source  string // endpoint, file, or table the data came from
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.Source, e.Line, e.Message)
	case e.Source != "":
		return fmt.Sprintf("parse error in %s from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError creates a ParseError for data in the given format.
func NewParseError(format, source string, message string, err error) *ParseError {
	return &ParseError{Format: format, Source: source, Message: message, Err: err}
}

// IOError reports a failed filesystem or network operation.
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError creates an IOError wrapping err.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Message: errText(err), Err: err}
}

// TimeoutError reports an operation that ran out of time. Duration is
// the budget that was exceeded, as text.
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// NewTimeoutError creates a TimeoutError for the named operation.
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{Operation: operation, Duration: duration, Message: message}
}

// The IsX helpers report whether any error in err's chain matches the
// named condition. They are shorthand for errors.Is with the matching
// sentinel.

// IsNotFound reports whether err means a missing resource.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err means rejected input.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsUnknownBand reports whether err means an unregistered filter band.
func IsUnknownBand(err error) bool { return errors.Is(err, ErrUnknownBand) }

// IsCatalogUnavailable reports whether err means a survey service
// could not be reached or answered with a server error.
func IsCatalogUnavailable(err error) bool { return errors.Is(err, ErrCatalogUnavailable) }

// IsTimeout reports whether err means an exceeded time budget.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// The WrapX helpers attach typed context to an underlying error and
// pass nil through untouched, so call sites can wrap unconditionally.

// WrapValidation marks err as a validation failure for field.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO marks err as an I/O failure on path.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse marks err as a parse failure for data in format.
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapAPI marks err as a failed exchange with service.
func WrapAPI(service string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Service: service, StatusCode: statusCode, Message: err.Error(), Err: err}
}

// WrapQuery marks err as a failed archive query.
func WrapQuery(service, query string, err error) error {
	if err == nil {
		return nil
	}
	return NewQueryError(service, query, err)
}
