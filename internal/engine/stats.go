// stats.go exposes the aggregation surface: per-item summaries and the
// global listing of versioned items. Pure reads over immutable rows; the
// only engine-level concern is resolving author identifiers to display
// names through the identity collaborator.

package engine

import (
	"context"

	"github.com/caldera-cms/vers/internal/store"
)

// VersionStats aggregates one item's history. Contributors come back
// ordered by descending contribution count with display names resolved
// through the configured identity resolver (the identifier itself when none
// is installed).
//
// Returns store.ErrNotFound for items with no versions.
func (s *Service) VersionStats(ctx context.Context, contentID, contentType string) (*store.VersionStats, error) {
	st, err := s.store.VersionStats(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}
	for i := range st.Contributors {
		st.Contributors[i].Name = s.displayName(st.Contributors[i].ID)
	}
	return st, nil
}

// ListContent returns one summary row per versioned item, most recently
// updated first. An empty contentType lists all items.
func (s *Service) ListContent(ctx context.Context, contentType string) ([]store.ContentSummary, error) {
	return s.store.ListContent(ctx, contentType)
}

// Stats returns aggregate database statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) displayName(id string) string {
	if s.resolve == nil {
		return id
	}
	if name := s.resolve(id); name != "" {
		return name
	}
	return id
}
