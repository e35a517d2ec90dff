// Package engine provides the version control engine: append-only version
// writes with content-hash dedup, history, tagging, cached comparisons,
// point-in-time restore and usage statistics.
//
// The engine is the single in-process API surface consumed by the CLI and
// the MCP server; it has no network protocol of its own. It wraps a
// store.SQLiteStore and owns the policies the store is deliberately
// ignorant of: which writes are no-ops, when a cached diff is trusted, and
// how a restore is expressed as a normal write.
package engine

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/caldera-cms/vers/internal/config"
	"github.com/caldera-cms/vers/internal/repo"
	"github.com/caldera-cms/vers/internal/store"
)

// DefaultAuthor is used when no author is configured or supplied.
const DefaultAuthor = "unknown"

// IdentityResolver maps an opaque author identifier to a display name.
// Identity is owned by an external collaborator; the engine only passes
// identifiers through and asks for labels on read paths that display them.
type IdentityResolver func(id string) string

// Option configures a Service.
type Option func(*Service)

// WithIdentityResolver installs a display-name resolver for stats output.
// Without one, the identifier doubles as the name.
func WithIdentityResolver(r IdentityResolver) Option {
	return func(s *Service) { s.resolve = r }
}

// Service provides all version control operations backed by a Store.
type Service struct {
	store      *store.SQLiteStore
	dbPath     string
	maxID      int
	maxContent int64
	resolve    IdentityResolver
	recomputes atomic.Int64
}

// New creates a Service, discovering the database by walking up the
// directory tree. The db parameter selects a named database (empty for
// default). Returns repo.ErrNotInitialised if no repository is found.
func New(db string, opts ...Option) (*Service, error) {
	dbPath, err := repo.Discover(db)
	if err != nil {
		return nil, err
	}
	return Open(dbPath, opts...)
}

// Open creates a Service over an explicit database path. Used by tests and
// tooling that manage their own repository layout.
func Open(dbPath string, opts ...Option) (*Service, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		s.Close()
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		s.Close()
		return nil, err
	}

	svc := &Service{
		store:      s,
		dbPath:     dbPath,
		maxID:      cfg.MaxID(),
		maxContent: cfg.MaxContent(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	_ = s.store.Checkpoint(context.Background())
	return s.store.Close()
}

// DBPath returns the path to the database file.
func (s *Service) DBPath() string {
	return s.dbPath
}

// DB returns the underlying database connection for query tooling.
// Do not close this connection directly; use Service.Close().
func (s *Service) DB() *sql.DB {
	return s.store.DB()
}

// CreateInput carries the caller-supplied fields of a new version.
type CreateInput struct {
	Title   string   // optional human label
	Content string   // full text snapshot
	Summary string   // optional change summary
	Major   bool     // advisory milestone flag
	Tags    []string // initial tag set
	Author  string   // opaque author identifier
}

// Create writes a new version of a content item, or returns the current
// latest unchanged when the content is identical to it (idempotent write).
// The boolean reports whether a new version was created.
func (s *Service) Create(ctx context.Context, contentID, contentType string, in CreateInput) (*store.Version, bool, error) {
	author := in.Author
	if author == "" {
		author = DefaultAuthor
	}
	return s.store.Create(ctx, contentID, contentType, in.Content, store.CreateOptions{
		Title:      in.Title,
		Summary:    in.Summary,
		Author:     author,
		Major:      in.Major,
		Tags:       in.Tags,
		MaxID:      s.maxID,
		MaxContent: s.maxContent,
	})
}

// Get returns a specific version of an item.
// Returns store.ErrNotFound if the version doesn't exist.
func (s *Service) Get(ctx context.Context, contentID, contentType string, version int) (*store.Version, error) {
	return s.store.Get(ctx, contentID, contentType, version)
}

// Latest returns the most recent version of an item.
func (s *Service) Latest(ctx context.Context, contentID, contentType string) (*store.Version, error) {
	return s.store.Latest(ctx, contentID, contentType)
}

// ByKey retrieves a version by its unique 8-char key.
func (s *Service) ByKey(ctx context.Context, key string) (*store.Version, error) {
	return s.store.ByKey(ctx, key)
}

// History returns version history for an item, newest first.
func (s *Service) History(ctx context.Context, contentID, contentType string, opts store.HistoryOptions) ([]store.Version, error) {
	return s.store.History(ctx, contentID, contentType, opts)
}

// Tag merges tags into a version's tag set and returns the updated version.
// Returns store.ErrNotFound if the version doesn't exist.
func (s *Service) Tag(ctx context.Context, contentID, contentType string, version int, tags ...string) (*store.Version, error) {
	v, err := s.store.Get(ctx, contentID, contentType, version)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddTags(ctx, v.Key, tags); err != nil {
		return nil, err
	}
	if v.Tags, err = s.store.TagsFor(ctx, v.Key); err != nil {
		return nil, err
	}
	return v, nil
}

// Untag removes a single tag from a version and returns the updated version.
// Removing an absent tag is a no-op. Returns store.ErrNotFound if the
// version doesn't exist.
func (s *Service) Untag(ctx context.Context, contentID, contentType string, version int, tag string) (*store.Version, error) {
	v, err := s.store.Get(ctx, contentID, contentType, version)
	if err != nil {
		return nil, err
	}
	if err := s.store.RemoveTag(ctx, v.Key, tag); err != nil {
		return nil, err
	}
	if v.Tags, err = s.store.TagsFor(ctx, v.Key); err != nil {
		return nil, err
	}
	return v, nil
}
