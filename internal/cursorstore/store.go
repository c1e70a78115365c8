package cursorstore

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the retention window for continuation state. A record older
// than this reads as not found regardless of whether it has been reclaimed.
const DefaultTTL = 72 * time.Hour

// ErrNotFound is returned for keys that were never stored, have expired, or
// have been reclaimed. Callers cannot tell those cases apart.
var ErrNotFound = errors.New("cursor not found")

// Store persists continuation state that is too large to ride inside a page
// token. Keys are opaque identifiers minted by the token codec.
type Store interface {
	Put(ctx context.Context, key string, payload []byte) error
	Get(ctx context.Context, key string) ([]byte, error)

	// Purge reclaims expired records and reports how many were removed.
	// Backends with native eviction may make this a no-op.
	Purge(ctx context.Context) (int, error)

	Close() error
}
