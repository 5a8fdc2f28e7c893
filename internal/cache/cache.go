// Package cache persists archive responses in a local SQLite database
// so repeated lookups do not hammer the CDS and ESA services. Entries
// expire after a TTL; expired rows are purged lazily on read and in
// bulk by the cleanup loop.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/heliobs/magpie/pkg/constants"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_expires ON responses(expires_at);
`

// Cache is a TTL-bounded key/value store for raw archive responses.
// It is safe for concurrent use.
type Cache struct {
	db      *sql.DB
	path    string
	ttl     time.Duration
	cleanup time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides how long entries stay valid.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithCleanupInterval overrides how often the cleanup loop purges
// expired rows.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.cleanup = d
		}
	}
}

// withClock substitutes the time source. Tests use it to expire
// entries without sleeping.
func withClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// DefaultPath returns the cache database path under the user cache
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.WrapIO("locate", "user cache directory", err)
	}
	return filepath.Join(dir, "magpie", constants.DefaultCacheFile), nil
}

// Open opens (creating if needed) the cache database at path. An empty
// path selects DefaultPath.
func Open(path string, opts ...Option) (*Cache, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("initialize", path, err)
	}

	c := &Cache{
		db:      db,
		path:    path,
		ttl:     constants.DefaultCacheTTL,
		cleanup: constants.CacheCleanupInterval,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Key derives a stable cache key from a service name and the request
// parts that make the query unique.
func Key(service string, parts ...string) string {
	h := sha256.Sum256([]byte(service + "\x00" + strings.Join(parts, "\x00")))
	return service + ":" + hex.EncodeToString(h[:16])
}

// Get returns the cached payload for key, reporting a miss for absent
// and expired entries. Expired rows are deleted on the way out.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	var expiresAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM responses WHERE key = ?`, key).
		Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapIO("read", c.path, err)
	}

	if c.now().Unix() >= expiresAt {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE key = ?`, key); err != nil {
			logging.Debug().Err(err).Str("key", key).Msg("deleting expired cache row")
		}
		return nil, false, nil
	}
	return payload, true, nil
}

// Put stores payload under key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key string, payload []byte) error {
	now := c.now()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses(key, payload, created_at, expires_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		key, payload, now.Unix(), now.Add(c.ttl).Unix())
	if err != nil {
		return errors.WrapIO("write", c.path, err)
	}
	return nil
}

// Purge deletes all expired rows and reports how many went.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM responses WHERE expires_at <= ?`, c.now().Unix())
	if err != nil {
		return 0, errors.WrapIO("purge", c.path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WrapIO("purge", c.path, err)
	}
	return n, nil
}

// Clear empties the cache entirely.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM responses`); err != nil {
		return errors.WrapIO("clear", c.path, err)
	}
	return nil
}

// Len counts live (unexpired) entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM responses WHERE expires_at > ?`, c.now().Unix()).Scan(&n)
	if err != nil {
		return 0, errors.WrapIO("count", c.path, err)
	}
	return n, nil
}

// RunCleanup purges expired rows on a fixed interval until ctx is
// canceled. Meant to run as a goroutine in serve mode.
func (c *Cache) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := c.Purge(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logging.Warn().Err(err).Msg("cache cleanup failed")
				}
				continue
			}
			if n > 0 {
				logging.Debug().Int64("purged", n).Msg("cache cleanup")
			}
		}
	}
}

// Path returns the database path backing this cache.
func (c *Cache) Path() string { return c.path }

// Close releases the database handle.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		return errors.WrapIO("close", c.path, err)
	}
	return nil
}
