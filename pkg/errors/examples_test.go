package errors_test

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/heliobs/magpie/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "target",
		ID:       "HD 42777",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Target not found")
	}

	// Output: Target not found
}

// Example_aPIError demonstrates archive error handling.
func Example_aPIError() {
	// Simulate an archive error
	err := &errors.APIError{
		Service:    "vizier",
		Endpoint:   "https://vizier.cds.unistra.fr/viz-bin/asu-tsv",
		StatusCode: 503,
		Message:    "Service Unavailable",
	}

	// Check and handle specific error types
	switch err.StatusCode {
	case 503:
		fmt.Println("Archive temporarily down - retry later")
	case 400:
		fmt.Println("Malformed query")
	case 500:
		fmt.Println("Server error")
	}

	// A 5xx status reads as catalog unavailability
	if errors.IsCatalogUnavailable(err) {
		fmt.Println("Photometry degrades to the remaining catalogs")
	}

	// Output:
	// Archive temporarily down - retry later
	// Photometry degrades to the remaining catalogs
}

// Example_bandError shows schema configuration error handling.
func Example_bandError() {
	// A schema referencing an unregistered band is a configuration bug
	err := &errors.BandError{
		Band:    "UVW1",
		Catalog: "GALEX",
	}

	fmt.Println(err.Error())

	if errors.IsUnknownBand(err) {
		fmt.Println("Abort the run, do not degrade")
	}

	// Output:
	// unknown filter band "UVW1" in catalog GALEX
	// Abort the run, do not degrade
}

// Example_timeoutError demonstrates timeout handling.
func Example_timeoutError() {
	// Create timeout error
	err := &errors.TimeoutError{
		Operation: "cone_search",
		Duration:  "30s",
		Message:   "Gaia TAP did not respond",
	}

	fmt.Println(err.Error())
	if errors.IsTimeout(err) {
		fmt.Println("Retry with a longer timeout")
	}

	// Output:
	// operation cone_search timed out after 30s: Gaia TAP did not respond
	// Retry with a longer timeout
}

// Example_errorWrapping demonstrates error wrapping patterns.
func Example_errorWrapping() {
	// Original error
	originalErr := fmt.Errorf("connection refused")

	// Wrap with IO error
	ioErr := errors.WrapIO("connect", "gea.esac.esa.int", originalErr)

	// Wrap with API error
	_ = &errors.APIError{
		Service:    "gaia",
		Endpoint:   "https://gea.esac.esa.int/tap-server/tap/sync",
		StatusCode: 0,
		Message:    "Failed to connect",
		Err:        ioErr,
	}

	// API error type is already known
	fmt.Println("API error occurred")

	// Output: API error occurred
}

// Example_validationError shows input validation errors.
func Example_validationError() {
	// Validate input
	dec := 123.0
	if dec > 90 {
		err := &errors.ValidationError{
			Field:   "dec",
			Value:   dec,
			Message: "declination must lie in [-90, 90]",
		}
		fmt.Println(err.Error())
	}

	// Output: validation failed for field dec: declination must lie in [-90, 90]
}

// Example_queryError demonstrates archive query failure handling.
func Example_queryError() {
	// Create query error
	err := errors.NewQueryError("gaia",
		"SELECT source_id FROM gaiadr2.gaia_source",
		fmt.Errorf("bad request"))

	// Handle query errors
	fmt.Println(err.Error())

	// Output: query against gaia failed: bad request
}

// Example_errorRecovery demonstrates error recovery strategies.
func Example_errorRecovery() {
	// Retry strategy for transient archive failures
	var attemptRequest func() error
	attemptRequest = func() error {
		// Simulate archive call
		return &errors.APIError{
			Service:    "vizier",
			StatusCode: 503,
			Message:    "Service Unavailable",
		}
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err := attemptRequest()

		if errors.IsCatalogUnavailable(err) {
			fmt.Printf("Attempt %d: Archive unavailable, retrying...\n", i+1)
			time.Sleep(time.Second) // Simple backoff
			continue
		}

		if err != nil {
			log.Fatal(err)
		}

		break
	}
}

// Example_errorChaining shows chained error handling.
func Example_errorChaining() {
	// Create a chain of errors
	baseErr := &errors.NotFoundError{
		Resource: "table",
		ID:       "II/336/apass9",
	}

	parseErr := &errors.ParseError{
		Format:  "tsv",
		Source:  "vizier",
		Message: "Failed to parse catalog response",
		Err:     baseErr,
	}

	// Check through the chain via Unwrap
	if errors.IsNotFound(parseErr) {
		fmt.Println("Table not found in parse chain")
	}

	// Output: Table not found in parse chain
}

// Example_hTTPStatusMapping maps HTTP codes to error types.
func Example_hTTPStatusMapping() {
	// Map HTTP status to appropriate error
	mapHTTPError := func(status int, service string) error {
		switch status {
		case http.StatusNotFound:
			return &errors.NotFoundError{
				Resource: "table",
				ID:       service,
			}
		case http.StatusBadRequest:
			return &errors.ValidationError{
				Field:   "query",
				Message: "Malformed constraint",
			}
		default:
			return &errors.APIError{
				Service:    service,
				StatusCode: status,
				Message:    http.StatusText(status),
			}
		}
	}

	err := mapHTTPError(503, "vizier")
	if errors.IsCatalogUnavailable(err) {
		fmt.Println("Archive unavailable")
	}

	// Output: Archive unavailable
}
