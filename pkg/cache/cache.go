// Package cache stores converted documents keyed by content hash.
//
// Conversions are pure functions of their input bytes and options, so the
// server and CLI can reuse a previous result whenever the SHA-256 of the
// input and the options match. Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON entry file per key under a directory
//   - [RedisCache]: a shared Redis instance, for several server replicas
//
// Keys are built by a [Keyer], so a deployment can namespace them with
// [NewScopedKeyer]. [WithHooks] reports hits, misses and writes to the
// observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ConvertKey is the key of a conversion result.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string

	// InfoKey is the key of the summary of a document read as format.
	InfoKey(inputHash, format string) string
}

// ConvertKeyOpts are the conversion options that change the output bytes.
type ConvertKeyOpts struct {
	From            string `json:"from"`
	To              string `json:"to"`
	StoreIDs        bool   `json:"store_ids"`
	OrderedVertices bool   `json:"ordered_vertices"`
}

// DefaultKeyer produces "convert:<sha256>" and "info:<format>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConvertKey hashes the input hash together with the options.
func (DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", inputHash, opts)
}

// InfoKey returns "info:<format>:<inputHash>".
func (DefaultKeyer) InfoKey(inputHash, format string) string {
	return "info:" + format + ":" + inputHash
}
