// compare.go implements the comparison cache over the diff engine.
//
// Compare is the only code path permitted to invoke diff.Compute; everything
// else (CLI, MCP, stats) goes through the cache. The cache never needs
// invalidation: versions are immutable, so a stored diff is a pure function
// of its (from, to, kind) key.
//
// A cached payload that fails to deserialize is treated as a miss and
// recomputed; the occurrence is recorded in the audit log so silent cache
// repair is at least visible after the fact.

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caldera-cms/vers/internal/diff"
	"github.com/caldera-cms/vers/internal/log"
	"github.com/caldera-cms/vers/internal/store"
)

// errMalformedCache marks a cached comparison payload that failed to
// deserialize. It never escapes Compare; callers only ever see a fresh
// result.
var errMalformedCache = errors.New("malformed cached comparison")

// Comparison is a diff between two specific versions of one item at one
// granularity.
type Comparison struct {
	ContentID   string      `json:"content_id"`
	ContentType string      `json:"content_type"`
	FromVersion int         `json:"from_version"`
	ToVersion   int         `json:"to_version"`
	FromKey     string      `json:"version_from_id"`
	ToKey       string      `json:"version_to_id"`
	Kind        diff.Kind   `json:"comparison_type"`
	Diff        diff.Result `json:"diff_data"`
}

// Compare resolves two version numbers of an item and returns their diff at
// the given granularity, from cache when available. Returns
// store.ErrNotFound if either version is missing.
func (s *Service) Compare(ctx context.Context, contentID, contentType string, fromVersion, toVersion int, kind diff.Kind) (*Comparison, error) {
	from, err := s.store.Get(ctx, contentID, contentType, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("from version %d: %w", fromVersion, err)
	}
	to, err := s.store.Get(ctx, contentID, contentType, toVersion)
	if err != nil {
		return nil, fmt.Errorf("to version %d: %w", toVersion, err)
	}

	cmp := &Comparison{
		ContentID:   contentID,
		ContentType: contentType,
		FromVersion: from.Version,
		ToVersion:   to.Version,
		FromKey:     from.Key,
		ToKey:       to.Key,
		Kind:        kind,
	}

	result, err := s.cachedDiff(ctx, from.Key, to.Key, kind)
	if err == nil {
		cmp.Diff = result
		return cmp, nil
	}
	if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, errMalformedCache) {
		return nil, err
	}
	if errors.Is(err, errMalformedCache) {
		log.Event("engine:compare", "cache-repair").
			Item(contentID, contentType).
			Detail("from_key", from.Key).
			Detail("to_key", to.Key).
			Detail("kind", string(kind)).
			Write(nil)
	}

	cmp.Diff = diff.Compute(from.Content, to.Content, kind)
	s.recomputes.Add(1)

	data, err := json.Marshal(cmp.Diff)
	if err != nil {
		return nil, fmt.Errorf("encode comparison: %w", err)
	}
	if err := s.store.PutComparison(ctx, from.Key, to.Key, string(kind), data); err != nil {
		return nil, err
	}
	return cmp, nil
}

// cachedDiff looks up a stored comparison and decodes it. Returns
// store.ErrNotFound on cache miss and errMalformedCache when the stored
// payload cannot be decoded or doesn't match the requested granularity.
func (s *Service) cachedDiff(ctx context.Context, fromKey, toKey string, kind diff.Kind) (diff.Result, error) {
	var result diff.Result
	data, err := s.store.GetComparison(ctx, fromKey, toKey, string(kind))
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, errMalformedCache
	}
	if result.Kind != kind {
		return result, errMalformedCache
	}
	return result, nil
}

// Recomputes reports how many times Compare has invoked the diff engine
// rather than serving from cache. Exposed for operational visibility; a
// steadily climbing count against a warm cache indicates corrupt entries.
func (s *Service) Recomputes() int64 {
	return s.recomputes.Load()
}
