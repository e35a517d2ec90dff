// restore.go implements forward-moving restoration of historical versions.
//
// Restore re-materialises a past snapshot as a brand-new version at the head
// of history rather than destructively rolling back. History is never
// rewritten: you can see when a restore happened, and restore a restore.
//
// Because Restore goes through the normal create path, content-hash dedup
// applies: restoring the version that is already the current head is a
// no-op and returns the head unchanged.

package engine

import (
	"context"
	"fmt"

	"github.com/caldera-cms/vers/internal/store"
)

// Restore re-creates version n of an item as a new current version. The new
// version carries the historical title and content, a generated change
// summary, the major flag, and bookkeeping tags ("restored", "from_vN").
// The boolean reports whether a new version was created; false means the
// target was already the current head.
//
// Returns store.ErrNotFound if the target version doesn't exist.
func (s *Service) Restore(ctx context.Context, contentID, contentType string, version int, restoredBy string) (*store.Version, bool, error) {
	target, err := s.store.Get(ctx, contentID, contentType, version)
	if err != nil {
		return nil, false, fmt.Errorf("restore version %d: %w", version, err)
	}

	return s.Create(ctx, contentID, contentType, CreateInput{
		Title:   target.Title,
		Content: target.Content,
		Summary: fmt.Sprintf("Restored from version %d", target.Version),
		Major:   true,
		Tags:    []string{"restored", fmt.Sprintf("from_v%d", target.Version)},
		Author:  restoredBy,
	})
}
