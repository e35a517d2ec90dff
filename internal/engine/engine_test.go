package engine_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caldera-cms/vers/internal/diff"
	"github.com/caldera-cms/vers/internal/engine"
	"github.com/caldera-cms/vers/internal/store"
)

func setupService(t *testing.T, opts ...engine.Option) *engine.Service {
	t.Helper()

	svc, err := engine.Open(filepath.Join(t.TempDir(), "vers.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func mustCreate(t *testing.T, svc *engine.Service, id, ctype, content string, in engine.CreateInput) {
	t.Helper()

	in.Content = content
	if in.Author == "" {
		in.Author = "tester"
	}
	_, created, err := svc.Create(context.Background(), id, ctype, in)
	require.NoError(t, err)
	require.True(t, created)
}

func TestCreateDefaultAuthor(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	v, created, err := svc.Create(ctx, "healthcare-2026", "speech", engine.CreateInput{Content: "draft"})
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, engine.DefaultAuthor, v.Author)
}

func TestCompareServedFromCache(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "Good evening.\nWe will fix healthcare.\n", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "Good evening.\nWe will fix healthcare for everyone.\n", engine.CreateInput{})

	first, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.Recomputes())
	assert.Equal(t, 1, first.Diff.Stats.Additions)
	assert.Equal(t, 1, first.Diff.Stats.Deletions)

	second, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.Recomputes())
	assert.Equal(t, first.Diff, second.Diff)
}

func TestCompareGranularitiesCachedSeparately(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "Hello world", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "Hello there world", engine.CreateInput{})

	_, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	cmp, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindWord)
	require.NoError(t, err)
	assert.Equal(t, int64(2), svc.Recomputes())
	assert.Equal(t, diff.KindWord, cmp.Diff.Kind)
	assert.Equal(t, 1, cmp.Diff.Stats.Additions)

	// Both entries now warm
	_, err = svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	_, err = svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindWord)
	require.NoError(t, err)
	assert.Equal(t, int64(2), svc.Recomputes())
}

func TestCompareDirectionIsDistinct(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "alpha\n", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "alpha\nbravo\n", engine.CreateInput{})

	forward, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	reverse, err := svc.Compare(ctx, "healthcare-2026", "speech", 2, 1, diff.KindLine)
	require.NoError(t, err)

	assert.Equal(t, int64(2), svc.Recomputes())
	assert.Equal(t, 1, forward.Diff.Stats.Additions)
	assert.Equal(t, 1, reverse.Diff.Stats.Deletions)
}

func TestCompareMalformedCacheRecomputed(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "alpha\n", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "bravo\n", engine.CreateInput{})

	want, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	require.Equal(t, int64(1), svc.Recomputes())

	// Corrupt the stored payload behind the cache's back.
	res, err := svc.DB().Exec(`UPDATE comparisons SET diff_data = ?`, `{not valid json`)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	assert.Equal(t, int64(2), svc.Recomputes())
	assert.Equal(t, want.Diff, got.Diff)

	// The recomputed payload replaced the corrupt row.
	_, err = svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	assert.Equal(t, int64(2), svc.Recomputes())
}

func TestCompareWrongKindInCacheRecomputed(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "alpha\n", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "bravo\n", engine.CreateInput{})

	_, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)

	// A payload that decodes fine but carries the wrong granularity is
	// treated the same as a corrupt one.
	_, err = svc.DB().Exec(`UPDATE comparisons SET diff_data = ?`, `{"type":"structural","changes":[],"stats":{}}`)
	require.NoError(t, err)

	got, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 2, diff.KindLine)
	require.NoError(t, err)
	assert.Equal(t, int64(2), svc.Recomputes())
	assert.Equal(t, diff.KindLine, got.Diff.Kind)
}

func TestCompareMissingVersion(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "alpha\n", engine.CreateInput{})

	_, err := svc.Compare(ctx, "healthcare-2026", "speech", 1, 9, diff.KindLine)
	assert.Error(t, err)
	_, err = svc.Compare(ctx, "missing", "speech", 1, 2, diff.KindLine)
	assert.Error(t, err)
}

func TestRestoreCreatesNewHead(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "draft one", engine.CreateInput{Title: "Healthcare Speech"})
	mustCreate(t, svc, "healthcare-2026", "speech", "draft two", engine.CreateInput{})

	v, created, err := svc.Restore(ctx, "healthcare-2026", "speech", 1, "tester")
	require.NoError(t, err)
	require.True(t, created)

	assert.Equal(t, 3, v.Version)
	assert.Equal(t, "draft one", v.Content)
	assert.Equal(t, "Healthcare Speech", v.Title)
	assert.Equal(t, "Restored from version 1", v.Summary)
	assert.True(t, v.Major)
	assert.Equal(t, []string{"from_v1", "restored"}, v.Tags)

	// History is intact: v1 remains readable.
	old, err := svc.Get(ctx, "healthcare-2026", "speech", 1)
	require.NoError(t, err)
	assert.Equal(t, "draft one", old.Content)
}

func TestRestoreCurrentHeadIsNoOp(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "draft one", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "draft two", engine.CreateInput{})

	v, created, err := svc.Restore(ctx, "healthcare-2026", "speech", 2, "tester")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, v.Version)

	versions, err := svc.History(ctx, "healthcare-2026", "speech", store.HistoryOptions{})
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestRestoreARestore(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "draft one", engine.CreateInput{})
	mustCreate(t, svc, "healthcare-2026", "speech", "draft two", engine.CreateInput{})

	_, created, err := svc.Restore(ctx, "healthcare-2026", "speech", 1, "tester")
	require.NoError(t, err)
	require.True(t, created)

	// Restoring v1 again would re-materialise content the head already
	// carries, so dedup turns it into a no-op.
	v, created, err := svc.Restore(ctx, "healthcare-2026", "speech", 1, "tester")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, v.Version)

	// Restoring the restore itself works like any other version.
	v, created, err = svc.Restore(ctx, "healthcare-2026", "speech", 2, "tester")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, v.Version)
	assert.Equal(t, "draft two", v.Content)
}

func TestRestoreMissingVersion(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "draft one", engine.CreateInput{})

	_, _, err := svc.Restore(ctx, "healthcare-2026", "speech", 5, "tester")
	assert.Error(t, err)
}

func TestTagMergeAndRemove(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "draft one", engine.CreateInput{Tags: []string{"draft"}})

	v, err := svc.Tag(ctx, "healthcare-2026", "speech", 1, "approved", "draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"approved", "draft"}, v.Tags)

	v, err = svc.Untag(ctx, "healthcare-2026", "speech", 1, "draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"approved"}, v.Tags)

	// Removing a tag that is not present succeeds.
	v, err = svc.Untag(ctx, "healthcare-2026", "speech", 1, "draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"approved"}, v.Tags)
}

func TestVersionStatsIdentityResolver(t *testing.T) {
	names := map[string]string{"u-alice": "Alice Nguyen"}
	svc := setupService(t, engine.WithIdentityResolver(func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}))
	ctx := context.Background()

	mustCreate(t, svc, "healthcare-2026", "speech", "one", engine.CreateInput{Author: "u-alice"})
	mustCreate(t, svc, "healthcare-2026", "speech", "two", engine.CreateInput{Author: "u-bob"})

	st, err := svc.VersionStats(ctx, "healthcare-2026", "speech")
	require.NoError(t, err)
	require.Len(t, st.Contributors, 2)

	byID := make(map[string]string, len(st.Contributors))
	for _, c := range st.Contributors {
		byID[c.ID] = c.Name
	}
	assert.Equal(t, "Alice Nguyen", byID["u-alice"])
	assert.Equal(t, "u-bob", byID["u-bob"])
}
