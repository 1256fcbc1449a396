package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litholens/prospector/internal/domain/rocks"
)

func entry(id, name string) rocks.SavedRock {
	return rocks.SavedRock{
		Analysis: rocks.Analysis{Name: name, Category: "Mineral"},
		ID:       rocks.RockID(id),
		Date:     1700000000000,
	}
}

func TestEmptyStoreListsNothing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInsertListDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, entry("a", "Granite")))
	require.NoError(t, s.Insert(ctx, entry("b", "Shale")))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, rocks.RockID("b"), items[0].ID)
	assert.Equal(t, rocks.RockID("a"), items[1].ID)

	require.NoError(t, s.Delete(ctx, "a"))
	items, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rocks.RockID("b"), items[0].ID)

	// a fresh store over the same dir sees the persisted state
	s2, err := New(dir)
	require.NoError(t, err)
	items, err = s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Shale", items[0].Name)
}

func TestLegacyBlobFallback(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id":"legacy-1","name":"Obsidian","category":"Igneous","date":123,"image":""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, LegacyName), []byte(legacy), 0o644))

	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rocks.RockID("legacy-1"), items[0].ID)
	assert.Equal(t, "Obsidian", items[0].Name)
}

func TestLegacyBlobNeverWrittenBack(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id":"legacy-1","name":"Obsidian","category":"Igneous","date":123,"image":""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, LegacyName), []byte(legacy), 0o644))

	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, entry("new-1", "Granite")))

	// writes land in the current blob
	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, rocks.RockID("new-1"), items[0].ID)

	// the legacy blob is untouched
	raw, err := os.ReadFile(filepath.Join(dir, LegacyName))
	require.NoError(t, err)
	assert.Equal(t, legacy, string(raw))

	// once the current blob exists the legacy one is ignored
	require.NoError(t, s.Delete(ctx, "legacy-1"))
	items, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCorruptBlobIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CurrentName), []byte("{broken"), 0o644))

	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.List(context.Background())
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))
}
