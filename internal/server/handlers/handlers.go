// Package handlers provides HTTP request handlers for the lookup API.
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/target"
)

// Service runs resolution lookups. The root client and the bare
// resolver both satisfy it.
type Service interface {
	Resolve(ctx context.Context, t target.Target) (*resolve.Result, error)
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	service   Service
	schemas   *catalogs.Table
	logger    *zerolog.Logger
	version   string
	startTime time.Time
}

// New creates a new Handlers instance.
func New(service Service, schemas *catalogs.Table, logger *zerolog.Logger, version string) *Handlers {
	return &Handlers{
		service:   service,
		schemas:   schemas,
		logger:    logger,
		version:   version,
		startTime: time.Now(),
	}
}
