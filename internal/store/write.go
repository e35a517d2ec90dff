// write.go implements version creation.
//
// Separated from the main store file to isolate the single mutating entry
// point. Every write appends a new row rather than updating in place, which
// is what makes restoration and diffing safe: history is never rewritten.
//
// Design: the read-max-then-insert sequence runs inside one transaction so
// two concurrent writers targeting the same item cannot compute the same
// next version number. Content-hash dedup against the latest version makes
// redundant autosave-style writes no-ops.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/caldera-cms/vers/internal/validate"
)

// Create writes a new version of a content item, preserving all previous
// versions. New items start at version 1; existing items increment from
// their max. If the item's latest version carries the same content hash as
// the submitted content, no row is written and the latest version is
// returned unchanged with created=false.
func (s *SQLiteStore) Create(ctx context.Context, contentID, contentType, content string, opts CreateOptions) (*Version, bool, error) {
	contentID, err := validate.ID(contentID, opts.MaxID)
	if err != nil {
		return nil, false, err
	}
	contentType, err = validate.ContentType(contentType, opts.MaxID)
	if err != nil {
		return nil, false, err
	}
	if err := validate.Content(content, opts.MaxContent); err != nil {
		return nil, false, err
	}
	tags := normaliseTags(opts.Tags)
	for _, tag := range tags {
		if err := validate.Tag(tag); err != nil {
			return nil, false, err
		}
	}

	hash := HashContent(content)
	var result *Version
	created := false

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+versionCols+` FROM versions
			WHERE content_id = ? AND content_type = ?
			ORDER BY version DESC LIMIT 1`, contentID, contentType)

		maxVer := 0
		latest, err := scanVer(row)
		switch {
		case err == nil:
			if latest.ContentHash == hash {
				// Idempotent write: same content as the current head.
				result = &latest
				return nil
			}
			maxVer = latest.Version
		case errors.Is(err, sql.ErrNoRows):
			// First version of this item.
		default:
			return fmt.Errorf("get latest version: %w", err)
		}

		key, err := genID()
		if err != nil {
			return err
		}
		now := time.Now().Unix()

		res, err := tx.ExecContext(ctx, `INSERT INTO versions
			(key, content_id, content_type, version, title, content, content_hash, author, summary, major, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key, contentID, contentType, maxVer+1, nilIfEmpty(opts.Title), content,
			hash, opts.Author, nilIfEmpty(opts.Summary), boolToInt(opts.Major), now)
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert version: %w", err)
		}

		for _, tag := range tags {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO version_tags (version_key, tag, created_at)
				VALUES (?, ?, ?)`, key, tag, now); err != nil {
				return fmt.Errorf("tag new version: %w", err)
			}
		}

		result = &Version{
			ID:          id,
			Key:         key,
			ContentID:   contentID,
			ContentType: contentType,
			Version:     maxVer + 1,
			Title:       opts.Title,
			Content:     content,
			ContentHash: hash,
			Author:      opts.Author,
			Summary:     opts.Summary,
			Major:       opts.Major,
			CreatedAt:   now,
			Tags:        tags,
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if !created {
		// Dedup hit: attach the existing head's tag set for a complete view.
		if result.Tags, err = s.TagsFor(ctx, result.Key); err != nil {
			return nil, false, err
		}
	}
	return result, created, nil
}

// normaliseTags trims, sorts and de-duplicates a tag list, giving the
// stored set its stable read order. Validation happens separately; blank
// entries are kept so they can be rejected rather than silently dropped.
func normaliseTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// nilIfEmpty returns nil for empty strings so optional columns store NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
