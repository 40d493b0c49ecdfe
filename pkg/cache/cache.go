// Package cache stores rendered artifacts between CLI invocations.
//
// Rendering a canvas through Graphviz is the only expensive step in
// canvasflow, so SVG output is cached under a key derived from the DOT
// source. Three backends implement [Cache]:
//
//   - [FileCache]: hash-sharded files under the user cache directory
//   - [RedisCache]: a shared Redis instance, for teams rendering the same vault
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that backends never see raw content.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the DOT
	// source with the given hash.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}
