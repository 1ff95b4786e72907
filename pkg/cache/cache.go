// Package cache stores rendered chart artifacts so that repeated renders of
// the same document at the same size are served without drawing again.
//
// Three backends implement [Cache]:
//   - [FileCache] keeps entries as JSON files under a directory, for the CLI
//   - [RedisCache] shares entries between server instances
//   - [NullCache] stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer], which hashes the document together with the
// output options. [ScopedKeyer] prefixes keys so several tenants can share
// one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// ArtifactKeyOpts are the output options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an artifact rendered from the
	// document with hash docHash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
