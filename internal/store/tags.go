// tags.go implements version tagging operations.
//
// Separated from write.go because tags are metadata about versions, not
// snapshot content. The tag set is the only mutable part of a version;
// everything else is frozen at creation.
//
// Design: tags are keyed by version key rather than (item, version number)
// so they follow the exact snapshot they label. The UNIQUE(version_key, tag)
// constraint gives the set its semantics: INSERT OR IGNORE is a union,
// DELETE is an idempotent removal.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/caldera-cms/vers/internal/validate"
)

// AddTags merges the supplied tags into a version's tag set (set union).
// Duplicates, both within the input and against stored tags, are ignored.
func (s *SQLiteStore) AddTags(ctx context.Context, versionKey string, tags []string) error {
	tags = normaliseTags(tags)
	for _, tag := range tags {
		if err := validate.Tag(tag); err != nil {
			return err
		}
	}

	now := time.Now().Unix()
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, tag := range tags {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO version_tags (version_key, tag, created_at)
				VALUES (?, ?, ?)`, versionKey, tag, now); err != nil {
				return fmt.Errorf("add tag %s: %w", tag, err)
			}
		}
		return nil
	})
}

// RemoveTag removes a single tag if present. Removing a tag that isn't set
// is a no-op, not an error.
func (s *SQLiteStore) RemoveTag(ctx context.Context, versionKey, tag string) error {
	if err := validate.Tag(tag); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM version_tags WHERE version_key = ? AND tag = ?`,
		versionKey, tag)
	if err != nil {
		return fmt.Errorf("remove tag %s: %w", tag, err)
	}
	return nil
}

// TagsFor returns a version's tag set. Storage order is not significant, but
// reads are stable: tags come back sorted.
func (s *SQLiteStore) TagsFor(ctx context.Context, versionKey string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM version_tags WHERE version_key = ? ORDER BY tag`,
		versionKey)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
