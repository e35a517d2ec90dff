// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from business logic. This is the only file in the
// package that imports the SQLite driver, making it easier to swap
// implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes, which matters for the
// many-reader model: history and compare calls keep working while an editor
// saves a new version.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access. It provides append-only versioned content storage with cached
// comparisons and per-version tags.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. If a method is missing or has the
// wrong signature, the build fails immediately rather than at runtime.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: allows concurrent readers while writing. Without this,
	// readers block writers and vice versa.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Busy timeout: how long to wait when another connection holds a lock.
	// Most operations complete in milliseconds; 5 seconds prevents "database
	// is locked" errors without waiting forever on a stuck connection.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// With WAL, synchronous=NORMAL is safe against corruption; FULL would
	// fsync every commit at ~10x the cost. The only risk is losing the last
	// transaction on OS crash, acceptable for this workload.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers that need custom queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Checkpoint flushes the WAL into the main database file. Useful before
// backing up or distributing the database.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// versionCols is the column list shared by all version queries, in scanVer order.
const versionCols = `id, key, content_id, content_type, version, title, content, content_hash, author, summary, major, created_at`

// scanVer extracts a Version from a database row, handling nullable fields.
func scanVer(sc scanner) (Version, error) {
	var v Version
	var title, summary sql.NullString
	var major int

	err := sc.Scan(&v.ID, &v.Key, &v.ContentID, &v.ContentType, &v.Version,
		&title, &v.Content, &v.ContentHash, &v.Author, &summary, &major, &v.CreatedAt)
	if err != nil {
		return v, err
	}

	if title.Valid {
		v.Title = title.String
	}
	if summary.Valid {
		v.Summary = summary.String
	}
	v.Major = major != 0
	return v, nil
}

// scanVersion converts sql.ErrNoRows to ErrNotFound and attaches the tag set.
func (s *SQLiteStore) scanVersion(ctx context.Context, row *sql.Row) (*Version, error) {
	v, err := scanVer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan version: %w", err)
	}
	if v.Tags, err = s.TagsFor(ctx, v.Key); err != nil {
		return nil, err
	}
	return &v, nil
}

// scanVersions iterates over query results, collecting versions into a slice
// and attaching tag sets.
func (s *SQLiteStore) scanVersions(ctx context.Context, rows *sql.Rows) ([]Version, error) {
	var versions []Version
	for rows.Next() {
		v, err := scanVer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range versions {
		tags, err := s.TagsFor(ctx, versions[i].Key)
		if err != nil {
			return nil, err
		}
		versions[i].Tags = tags
	}
	return versions, nil
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. Rollback is deferred to handle panics and early returns; it
// is a no-op after a successful commit.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID creates a unique 8-character identifier using crypto/rand.
// Used for version keys to enable direct lookups that survive renumbering.
func genID() (string, error) {
	b := make([]byte, 5) // 5 bytes = 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}

// HashContent returns the BLAKE2b-256 hex digest of a snapshot's content.
// The digest detects no-op writes: if the latest version of an item carries
// the same hash, create is an idempotent no-op.
func HashContent(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
