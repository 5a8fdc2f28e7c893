package constants_test

import (
	"fmt"
	"net/http"

	"github.com/heliobs/magpie/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}
	fmt.Printf("HTTP timeout: %v\n", client.Timeout)
	fmt.Printf("Query timeout: %v\n", constants.QueryTimeout)
	// Output:
	// HTTP timeout: 30s
	// Query timeout: 2m0s
}

// Example_searchRadius demonstrates the astrometric defaults
func Example_searchRadius() {
	radiusDeg := constants.DefaultSearchRadiusArcsec / constants.ArcsecPerDegree
	fmt.Printf("Default radius: %g arcsec (%.6f deg)\n",
		constants.DefaultSearchRadiusArcsec, radiusDeg)
	// Output:
	// Default radius: 20 arcsec (0.005556 deg)
}
