// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement Cache:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries on disk, for the CLI
//   - [RedisCache] keeps entries in Redis, for the layout service
//
// Keys are built by a [Keyer] from a content hash plus the options that
// influence the result, so two requests share an entry only when they would
// produce identical output.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind.
const (
	// TTLLayout is how long resolved layouts are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that change a resolved layout.
type LayoutKeyOpts struct {
	Width   float64 `json:"width"`
	HasMore bool    `json:"has_more"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey is the key for the layout of the items hashed to itemsHash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key for an artifact rendered from the layout hashed
	// to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
