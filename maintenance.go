package magpie

import (
	"context"

	"github.com/heliobs/magpie/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Maintainer = (*client)(nil)

// Maintainer provides controls for background cache maintenance.
type Maintainer interface {
	// MaintenanceOn begins periodic purging of expired cache entries
	MaintenanceOn() error

	// MaintenanceOff stops background cache maintenance
	MaintenanceOff() error
}

// MaintenanceOn begins periodic purging of expired cache entries.
// Long-running processes call this once; one-shot lookups rely on the
// lazy purge that happens on read instead.
func (c *client) MaintenanceOn() error {
	if c.cache == nil {
		return &errors.ConfigError{
			Component: "client",
			Message:   "cache maintenance requires an enabled cache",
		}
	}

	// Stop any existing loop to prevent resource leaks
	if err := c.MaintenanceOff(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	c.maintMu.Lock()
	c.maintCancel = cancel
	c.maintMu.Unlock()

	go c.cache.RunCleanup(ctx)
	return nil
}

// MaintenanceOff stops background cache maintenance.
func (c *client) MaintenanceOff() error {
	c.maintMu.Lock()
	defer c.maintMu.Unlock()

	if c.maintCancel != nil {
		c.maintCancel()
		c.maintCancel = nil
	}
	return nil
}
