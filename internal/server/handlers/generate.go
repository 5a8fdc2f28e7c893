// Package handlers provides HTTP request handlers for the lookup API.
//
// Each file covers one endpoint group: lookup.go resolves targets,
// registry.go lists the filter bands and catalog schemas, health.go
// answers liveness and readiness probes. A handler validates its
// query parameters, calls the lookup service or reads the registry,
// and writes the result through the response package.
//
// Handlers hold their dependencies in the Handlers struct, so tests
// can swap in a stub Service.
package handlers

//go:generate gomarkdoc --output README.md .
