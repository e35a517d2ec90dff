// stats.go implements statistics and aggregate queries for operational
// visibility.
//
// Separated to collect "read-only, aggregate" operations distinct from CRUD.
// These queries power dashboards and admin tooling without modifying data.
// None of them load snapshot content; they use COUNT(), MIN(), MAX() and
// GROUP BY to extract metadata directly from the database.

package store

import (
	"context"
	"fmt"
)

// VersionStats aggregates one item's version history: totals, milestone
// count, per-author contribution counts and the first/last write timestamps.
// Contributors are ordered by descending contribution count, then by author
// for a stable listing. Returns ErrNotFound for items with no versions.
func (s *SQLiteStore) VersionStats(ctx context.Context, contentID, contentType string) (*VersionStats, error) {
	var st VersionStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(major), 0), COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0)
		FROM versions WHERE content_id = ? AND content_type = ?
	`, contentID, contentType).Scan(&st.TotalVersions, &st.MajorVersions, &st.FirstVersionAt, &st.LastVersionAt)
	if err != nil {
		return nil, fmt.Errorf("version stats: %w", err)
	}
	if st.TotalVersions == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT author, COUNT(*) FROM versions
		WHERE content_id = ? AND content_type = ?
		GROUP BY author
		ORDER BY COUNT(*) DESC, author
	`, contentID, contentType)
	if err != nil {
		return nil, fmt.Errorf("version stats contributors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Contributor
		if err := rows.Scan(&c.ID, &c.VersionCount); err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		st.Contributors = append(st.Contributors, c)
	}
	return &st, rows.Err()
}

// ListContent returns one summary row per distinct versioned item, most
// recently updated first. An empty contentType lists everything.
func (s *SQLiteStore) ListContent(ctx context.Context, contentType string) ([]ContentSummary, error) {
	query := `SELECT content_id, content_type, COUNT(*), MAX(version), MAX(created_at)
		FROM versions`
	var args []any
	if contentType != "" {
		query += ` WHERE content_type = ?`
		args = append(args, contentType)
	}
	query += ` GROUP BY content_id, content_type
		ORDER BY MAX(created_at) DESC, content_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []ContentSummary
	for rows.Next() {
		var c ContentSummary
		if err := rows.Scan(&c.ContentID, &c.ContentType, &c.VersionCount, &c.LatestVersion, &c.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan content summary: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Stats returns aggregate database statistics for capacity planning,
// monitoring dashboards and administrative tooling.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT content_id || ':' || content_type) FROM versions`).Scan(&st.Items)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(major), 0) FROM versions`).Scan(&st.TotalVersions, &st.MajorVersions)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM version_tags`).Scan(&st.Tags)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comparisons`).Scan(&st.Comparisons)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT author) FROM versions`).Scan(&st.Authors)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(MIN(created_at), 0), COALESCE(MAX(created_at), 0) FROM versions`).Scan(&st.OldestVersion, &st.NewestVersion)
	if err != nil {
		return nil, err
	}

	return &st, nil
}
