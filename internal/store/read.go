// read.go implements version retrieval operations for the SQLite store.
//
// Separated from the main store file to isolate read-only query logic. These
// operations never modify data; versions are immutable once created, so all
// reads are safe under arbitrary concurrency.

package store

import (
	"context"
	"fmt"

	"github.com/caldera-cms/vers/internal/validate"
)

// Get returns a specific historical version of a content item.
// Enables audit, comparison and restore operations.
func (s *SQLiteStore) Get(ctx context.Context, contentID, contentType string, version int) (*Version, error) {
	if err := validate.VersionNumber(version); err != nil {
		return nil, err
	}
	query := `SELECT ` + versionCols + ` FROM versions
		WHERE content_id = ? AND content_type = ? AND version = ?`
	return s.scanVersion(ctx, s.db.QueryRowContext(ctx, query, contentID, contentType, version))
}

// Latest returns the highest version of a content item, equivalent to Get
// with the maximum existing version number.
func (s *SQLiteStore) Latest(ctx context.Context, contentID, contentType string) (*Version, error) {
	query := `SELECT ` + versionCols + ` FROM versions
		WHERE content_id = ? AND content_type = ?
		ORDER BY version DESC LIMIT 1`
	return s.scanVersion(ctx, s.db.QueryRowContext(ctx, query, contentID, contentType))
}

// ByKey retrieves a version by its 8-character unique key. Keys provide
// stable external references for cached comparisons and integrations.
func (s *SQLiteStore) ByKey(ctx context.Context, key string) (*Version, error) {
	query := `SELECT ` + versionCols + ` FROM versions WHERE key = ?`
	return s.scanVersion(ctx, s.db.QueryRowContext(ctx, query, key))
}

// History returns an item's versions in descending order (newest first).
// MajorOnly filters to milestone snapshots; Limit bounds the count to keep
// queries on long histories cheap.
func (s *SQLiteStore) History(ctx context.Context, contentID, contentType string, opts HistoryOptions) ([]Version, error) {
	query := `SELECT ` + versionCols + ` FROM versions
		WHERE content_id = ? AND content_type = ?`
	args := []any{contentID, contentType}

	if opts.MajorOnly {
		query += ` AND major = 1`
	}
	query += ` ORDER BY version DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history for %s/%s: %w", contentType, contentID, err)
	}
	defer rows.Close()

	return s.scanVersions(ctx, rows)
}
