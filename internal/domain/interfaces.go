package domain

import (
	"context"
	"time"
)

// Fetcher defines the interface for retrieving a project file tree
type Fetcher interface {
	// FetchProject retrieves the file tree for a validated project identifier
	FetchProject(ctx context.Context, projectID string) (*ProjectTree, error)
	// Close releases resources
	Close() error
}

// Sink defines the terminal consumer of sanitized file entries
type Sink interface {
	// Add consumes one accepted entry
	Add(entry SanitizedEntry) error
	// Close finalizes the sink; no Add calls are valid afterwards
	Close() error
}

// Cache defines the interface for response caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
