// Package medium defines the durable key/value contract the entity stores write
// through. Values are opaque strings; each key holds one collection.
package medium

import (
	"context"
	"errors"
)

// Driver identifies a concrete medium backend implementation.
type Driver string

const (
	DriverMemory     Driver = "memory"   // in-memory (tests / ephemeral)
	DriverFilesystem Driver = "fs"       // one file per key under a root directory
	DriverSQLite     Driver = "sqlite"   // embedded sqlite file (default)
	DriverPostgres   Driver = "postgres" // PostgreSQL server
	DriverS3         Driver = "s3"       // S3 / MinIO compatible
	DriverMongo      Driver = "mongo"    // MongoDB collection
)

// Medium is a synchronous, single-key-atomic key/value store.
type Medium interface {
	// GetItem returns the value stored under key. found is false when the key was
	// never written; err is reserved for transport or I/O failures.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	// SetItem replaces the value under key.
	SetItem(ctx context.Context, key, value string) error
	// Driver returns the configured backend driver.
	Driver() Driver
}

// ErrInvalidKey is returned for keys a backend cannot address safely.
var ErrInvalidKey = errors.New("medium: invalid key")

// Close releases backend resources when the medium holds any.
func Close(m Medium) error {
	if c, ok := m.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
