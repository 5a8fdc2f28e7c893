// Package server provides the HTTP server for the lookup API.
//
// This file contains general API documentation annotations for Swag/OpenAPI generation.
// These annotations describe the overall API (title, version, etc.)
// while individual endpoint annotations live in the handler files.
package server

// @title Magpie API
// @version 1.0
// @description REST API for resolving astronomical targets against photometric survey catalogs.
// @description
// @description Features:
// @description - One-call target resolution with deduplicated multi-catalog photometry
// @description - Filter band and catalog registry introspection
// @description - Prometheus metrics
// @description - Rate limiting and CORS support
//
// @contact.name Magpie Project
// @contact.url https://github.com/heliobs/magpie
//
// @license.name MIT
// @license.url https://github.com/heliobs/magpie/blob/master/LICENSE
//
// @host localhost:8080
// @BasePath /api/v1
