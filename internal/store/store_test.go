package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caldera-cms/vers/internal/store"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "vers.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func write(t *testing.T, s *store.SQLiteStore, id, ctype, content string, opts store.CreateOptions) *store.Version {
	t.Helper()

	if opts.Author == "" {
		opts.Author = "tester"
	}
	v, created, err := s.Create(context.Background(), id, ctype, content, opts)
	require.NoError(t, err)
	require.True(t, created)
	return v
}

func TestCreateVersionNumbering(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v1 := write(t, s, "healthcare-2026", "speech", "draft one", store.CreateOptions{})
	v2 := write(t, s, "healthcare-2026", "speech", "draft two", store.CreateOptions{})
	v3 := write(t, s, "healthcare-2026", "speech", "draft three", store.CreateOptions{})

	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, 2, v2.Version)
	assert.Equal(t, 3, v3.Version)

	// Keys are unique identifiers, 8 chars
	assert.Len(t, v1.Key, 8)
	assert.NotEqual(t, v1.Key, v2.Key)

	latest, err := s.Latest(ctx, "healthcare-2026", "speech")
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Version)
	assert.Equal(t, "draft three", latest.Content)
}

func TestCreateDedup(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v1 := write(t, s, "healthcare-2026", "speech", "same draft", store.CreateOptions{})

	v, created, err := s.Create(ctx, "healthcare-2026", "speech", "same draft", store.CreateOptions{Author: "tester"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, v1.Key, v.Key)
	assert.Equal(t, 1, v.Version)

	// A different snapshot still appends
	v, created, err = s.Create(ctx, "healthcare-2026", "speech", "new draft", store.CreateOptions{Author: "tester"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, v.Version)
}

func TestCreateDedupOnlyAgainstLatest(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	write(t, s, "healthcare-2026", "speech", "draft one", store.CreateOptions{})
	write(t, s, "healthcare-2026", "speech", "draft two", store.CreateOptions{})

	// Same content as v1, but the head is v2: a new version is created.
	v, created, err := s.Create(ctx, "healthcare-2026", "speech", "draft one", store.CreateOptions{Author: "tester"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 3, v.Version)
}

func TestItemsAreIndependent(t *testing.T) {
	s := setupStore(t)

	write(t, s, "healthcare-2026", "speech", "speech text", store.CreateOptions{})
	v := write(t, s, "healthcare-2026", "press_release", "release text", store.CreateOptions{})

	// Same id, different type: its own version sequence
	assert.Equal(t, 1, v.Version)
}

func TestContentTypeNormalised(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	write(t, s, "jordan-lee", "Bio", "Jordan Lee bio", store.CreateOptions{})

	v, err := s.Latest(ctx, "jordan-lee", "bio")
	require.NoError(t, err)
	assert.Equal(t, "bio", v.ContentType)
}

func TestGetNotFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing", "speech", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	write(t, s, "present", "speech", "text", store.CreateOptions{})
	_, err = s.Get(ctx, "present", "speech", 2)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Latest(ctx, "missing", "speech")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.ByKey(ctx, "zzzzzzzz")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetInvalidVersionNumber(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	write(t, s, "present", "speech", "text", store.CreateOptions{})

	_, err := s.Get(ctx, "present", "speech", 0)
	assert.Error(t, err)
	_, err = s.Get(ctx, "present", "speech", -3)
	assert.Error(t, err)
}

func TestByKey(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v1 := write(t, s, "healthcare-2026", "speech", "draft one", store.CreateOptions{})
	write(t, s, "healthcare-2026", "speech", "draft two", store.CreateOptions{})

	got, err := s.ByKey(ctx, v1.Key)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "draft one", got.Content)
}

func TestHistory(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	write(t, s, "healthcare-2026", "speech", "draft one", store.CreateOptions{})
	write(t, s, "healthcare-2026", "speech", "draft two", store.CreateOptions{Major: true})
	write(t, s, "healthcare-2026", "speech", "draft three", store.CreateOptions{})

	versions, err := s.History(ctx, "healthcare-2026", "speech", store.HistoryOptions{})
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, 3, versions[0].Version)
	assert.Equal(t, 1, versions[2].Version)

	versions, err = s.History(ctx, "healthcare-2026", "speech", store.HistoryOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 3, versions[0].Version)
	assert.Equal(t, 2, versions[1].Version)

	versions, err = s.History(ctx, "healthcare-2026", "speech", store.HistoryOptions{MajorOnly: true})
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, 2, versions[0].Version)
}

func TestTagsSetSemantics(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v := write(t, s, "healthcare-2026", "speech", "draft", store.CreateOptions{})

	require.NoError(t, s.AddTags(ctx, v.Key, []string{"draft", "internal"}))
	require.NoError(t, s.AddTags(ctx, v.Key, []string{"draft"})) // duplicate: no-op

	tags, err := s.TagsFor(ctx, v.Key)
	require.NoError(t, err)
	assert.Equal(t, []string{"draft", "internal"}, tags)

	require.NoError(t, s.RemoveTag(ctx, v.Key, "draft"))
	require.NoError(t, s.RemoveTag(ctx, v.Key, "draft")) // absent: no-op

	tags, err = s.TagsFor(ctx, v.Key)
	require.NoError(t, err)
	assert.Equal(t, []string{"internal"}, tags)
}

func TestCreateWithTags(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	v := write(t, s, "healthcare-2026", "speech", "draft", store.CreateOptions{
		Tags: []string{"zeta", "alpha", "zeta"},
	})

	// Deduplicated and sorted on the returned version
	assert.Equal(t, []string{"alpha", "zeta"}, v.Tags)

	got, err := s.Get(ctx, "healthcare-2026", "speech", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, got.Tags)
}

func TestInvalidInputs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, _, err := s.Create(ctx, "  ", "speech", "text", store.CreateOptions{Author: "t"})
	assert.Error(t, err)

	_, _, err = s.Create(ctx, "id", "\x00bad", "text", store.CreateOptions{Author: "t"})
	assert.Error(t, err)

	_, _, err = s.Create(ctx, "id", "speech", "text", store.CreateOptions{Author: "t", Tags: []string{" "}})
	assert.Error(t, err)

	// Identifier length limit
	_, _, err = s.Create(ctx, "a-very-long-identifier", "speech", "text", store.CreateOptions{Author: "t", MaxID: 8})
	assert.Error(t, err)

	// Content size limit surfaces through the store's own sentinel
	_, _, err = s.Create(ctx, "id", "speech", "0123456789", store.CreateOptions{Author: "t", MaxContent: 5})
	assert.ErrorIs(t, err, store.ErrContentTooLarge)
}

func TestComparisonsRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.GetComparison(ctx, "aaaa0001", "aaaa0002", "full")
	assert.ErrorIs(t, err, store.ErrNotFound)

	payload := []byte(`{"type":"full","stats":{"additions":1}}`)
	require.NoError(t, s.PutComparison(ctx, "aaaa0001", "aaaa0002", "full", payload))

	got, err := s.GetComparison(ctx, "aaaa0001", "aaaa0002", "full")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Distinct granularity is a distinct cache entry
	_, err = s.GetComparison(ctx, "aaaa0001", "aaaa0002", "structural")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Direction matters
	_, err = s.GetComparison(ctx, "aaaa0002", "aaaa0001", "full")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Writing the same key replaces the payload
	replacement := []byte(`{"type":"full","stats":{"additions":2}}`)
	require.NoError(t, s.PutComparison(ctx, "aaaa0001", "aaaa0002", "full", replacement))
	got, err = s.GetComparison(ctx, "aaaa0001", "aaaa0002", "full")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestVersionStats(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	write(t, s, "healthcare-2026", "speech", "one", store.CreateOptions{Author: "alice"})
	write(t, s, "healthcare-2026", "speech", "two", store.CreateOptions{Author: "bob", Major: true})
	write(t, s, "healthcare-2026", "speech", "three", store.CreateOptions{Author: "bob"})

	st, err := s.VersionStats(ctx, "healthcare-2026", "speech")
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalVersions)
	assert.Equal(t, 1, st.MajorVersions)
	require.Len(t, st.Contributors, 2)
	assert.Equal(t, "bob", st.Contributors[0].ID)
	assert.Equal(t, 2, st.Contributors[0].VersionCount)
	assert.Equal(t, "alice", st.Contributors[1].ID)
	assert.LessOrEqual(t, st.FirstVersionAt, st.LastVersionAt)

	_, err = s.VersionStats(ctx, "missing", "speech")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListContent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	write(t, s, "healthcare-2026", "speech", "one", store.CreateOptions{})
	write(t, s, "healthcare-2026", "speech", "two", store.CreateOptions{})
	write(t, s, "jordan-lee", "bio", "bio text", store.CreateOptions{})

	items, err := s.ListContent(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := make(map[string]store.ContentSummary, len(items))
	for _, it := range items {
		byID[it.ContentID] = it
	}
	assert.Equal(t, 2, byID["healthcare-2026"].VersionCount)
	assert.Equal(t, 2, byID["healthcare-2026"].LatestVersion)
	assert.Equal(t, 1, byID["jordan-lee"].VersionCount)

	items, err = s.ListContent(ctx, "bio")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "jordan-lee", items[0].ContentID)
}

func TestGlobalStats(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Items)

	v := write(t, s, "healthcare-2026", "speech", "one", store.CreateOptions{Author: "alice"})
	write(t, s, "healthcare-2026", "speech", "two", store.CreateOptions{Author: "bob", Major: true})
	write(t, s, "jordan-lee", "bio", "bio text", store.CreateOptions{Author: "alice"})
	require.NoError(t, s.AddTags(ctx, v.Key, []string{"draft"}))
	require.NoError(t, s.PutComparison(ctx, "k1", "k2", "full", []byte("{}")))

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Items)
	assert.Equal(t, int64(3), st.TotalVersions)
	assert.Equal(t, int64(1), st.MajorVersions)
	assert.Equal(t, int64(1), st.Tags)
	assert.Equal(t, int64(1), st.Comparisons)
	assert.Equal(t, int64(2), st.Authors)
}

func TestHashContent(t *testing.T) {
	h1 := store.HashContent("draft one")
	h2 := store.HashContent("draft one")
	h3 := store.HashContent("draft two")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // BLAKE2b-256 hex
}
