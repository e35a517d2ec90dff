// interfaces.go defines the Store interface implemented by SQLiteStore.
//
// Consumers (the engine, the CLI, the MCP server) depend on this interface
// rather than the concrete type, enabling testing with fakes and future
// backend changes. Only this package knows the store is SQLite.

package store

import (
	"context"
	"database/sql"
)

// Store defines all persistence operations for versioned content.
type Store interface {
	// Init creates tables and indexes if they don't exist.
	Init() error

	// Close releases the database connection.
	Close() error

	// Create writes a new version of a content item, or returns the current
	// latest version unchanged when the submitted content hashes identically
	// to it (idempotent write). The boolean reports whether a new row was
	// written. Version numbers are assigned transactionally as MAX+1.
	Create(ctx context.Context, contentID, contentType, content string, opts CreateOptions) (*Version, bool, error)

	// Get returns a specific version of an item.
	// Returns ErrNotFound if the version doesn't exist.
	Get(ctx context.Context, contentID, contentType string, version int) (*Version, error)

	// Latest returns the highest version of an item.
	// Returns ErrNotFound if the item has no versions.
	Latest(ctx context.Context, contentID, contentType string) (*Version, error)

	// ByKey retrieves a version by its 8-character unique key.
	ByKey(ctx context.Context, key string) (*Version, error)

	// History returns an item's versions in descending order (newest first).
	History(ctx context.Context, contentID, contentType string, opts HistoryOptions) ([]Version, error)

	// AddTags merges tags into a version's tag set (set union).
	AddTags(ctx context.Context, versionKey string, tags []string) error

	// RemoveTag removes a single tag if present; no error if absent.
	RemoveTag(ctx context.Context, versionKey, tag string) error

	// TagsFor returns a version's tag set in stable (sorted) order.
	TagsFor(ctx context.Context, versionKey string) ([]string, error)

	// GetComparison returns the cached diff payload for an ordered version
	// pair at a given granularity. Returns ErrNotFound on cache miss.
	GetComparison(ctx context.Context, fromKey, toKey, kind string) ([]byte, error)

	// PutComparison stores a computed diff payload. Losing an insert race to
	// a concurrent writer is harmless and not reported as an error, because
	// the cached value is a pure function of its key.
	PutComparison(ctx context.Context, fromKey, toKey, kind string, data []byte) error

	// VersionStats aggregates one item's history (counts, contributors,
	// first/last timestamps). Returns ErrNotFound for unknown items.
	VersionStats(ctx context.Context, contentID, contentType string) (*VersionStats, error)

	// ListContent returns one summary row per versioned item, most recently
	// updated first, optionally filtered by content type.
	ListContent(ctx context.Context, contentType string) ([]ContentSummary, error)

	// Stats returns aggregate database statistics.
	Stats(ctx context.Context) (*Stats, error)

	// Tx runs fn within a database transaction.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Checkpoint flushes the WAL to the main database file.
	Checkpoint(ctx context.Context) error
}
