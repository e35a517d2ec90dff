// comparisons.go implements the persisted diff cache.
//
// The store only moves opaque payloads; the diff shape lives in the diff
// package and the cache policy (hit, miss, malformed entry) lives in the
// engine. Keeping the store ignorant of the payload format means a format
// change never requires a schema change.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetComparison returns the cached diff payload for the ordered pair of
// version keys at the given granularity. Returns ErrNotFound on cache miss.
func (s *SQLiteStore) GetComparison(ctx context.Context, fromKey, toKey, kind string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT diff_data FROM comparisons
		WHERE from_key = ? AND to_key = ? AND kind = ?`, fromKey, toKey, kind).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comparison: %w", err)
	}
	return data, nil
}

// PutComparison stores a computed diff payload. Two callers computing the
// same diff concurrently may both reach this insert; losing that race is
// harmless because the payload is a pure function of the key. OR REPLACE
// rather than OR IGNORE so a malformed cached entry is repaired by the
// recomputed value instead of surviving indefinitely.
func (s *SQLiteStore) PutComparison(ctx context.Context, fromKey, toKey, kind string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO comparisons (from_key, to_key, kind, diff_data, created_at)
		VALUES (?, ?, ?, ?, ?)`, fromKey, toKey, kind, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put comparison: %w", err)
	}
	return nil
}
