package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/gamedex/gamedex/pkg/log"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 5, "Outer Wilds", year(2019), nil)

	got, err := fx.store.Get(fx.ctx, catalog.TypeGames, "5")
	require.NoError(t, err)
	require.Equal(t, "5", got.ID())
	require.Equal(t, "Outer Wilds", got.Title())

	path := filepath.Join(fx.store.TypeDir(catalog.TypeGames), "5", catalog.DescriptorFilename)
	require.FileExists(t, path)
}

func TestStore_CreateConflicts(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 5, "Outer Wilds", nil, nil)

	dup := catalog.NewDescriptor()
	require.NoError(t, dup.Set(5, "id"))
	dup.SetTitle("Something Else")
	_, err := fx.store.Create(fx.ctx, catalog.TypeGames, dup)
	require.Error(t, err)
	require.True(t, catalog.IsConflict(err))

	sameTitle := catalog.NewDescriptor()
	require.NoError(t, sameTitle.Set(6, "id"))
	sameTitle.SetTitle("Outer Wilds")
	_, err = fx.store.Create(fx.ctx, catalog.TypeGames, sameTitle)
	require.Error(t, err)
	require.True(t, catalog.IsConflict(err))
}

func TestStore_CreateRequiresIdentifier(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	d := catalog.NewDescriptor()
	d.SetTitle("No ID")
	_, err := fx.store.Create(fx.ctx, catalog.TypeGames, d)
	require.Error(t, err)
	require.True(t, catalog.IsValidation(err))
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := fx.store.Get(fx.ctx, catalog.TypeGames, "404")
	require.Error(t, err)
	require.True(t, catalog.IsNotFound(err))

	var nf *catalog.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, catalog.TypeGames, nf.Type)
	require.Equal(t, "404", nf.ID)
}

func TestStore_LoadMissingTypeDirIsEmpty(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	list, err := fx.store.Load(fx.ctx, catalog.TypeGames)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestStore_LoadSkipsUnparseableDescriptors(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 1, "Good", nil, nil)

	badDir := filepath.Join(fx.store.TypeDir(catalog.TypeGames), "2")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(badDir, catalog.DescriptorFilename), []byte("{not json"), 0o644))

	list, err := fx.store.Load(fx.ctx, catalog.TypeGames)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "1", list[0].ID())
	warned := log.FindEntries(fx.th, func(e log.LoggedEntry) bool {
		return e.Msg == "skipping entity with unreadable descriptor"
	})
	require.NotEmpty(t, warned)
}

func TestStore_LoadNumericOrder(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	for _, id := range []int{10, 2, 1} {
		fx.addGame(t, id, "Game "+catalog.Key(id), nil, nil)
	}

	list, err := fx.store.Load(fx.ctx, catalog.TypeGames)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.ID())
	}
	require.Equal(t, []string{"1", "2", "10"}, ids)
}

func TestStore_UpdateAllowListOnly(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 5, "Outer Wilds", nil, nil)

	_, err := fx.store.Update(fx.ctx, catalog.TypeGames, "5", map[string]any{
		"rating": 92.5,
		"id":     999,    // not updatable
		"igdbId": "evil", // unknown, silently dropped
	}, nil)
	require.NoError(t, err)

	got, err := fx.store.Get(fx.ctx, catalog.TypeGames, "5")
	require.NoError(t, err)
	require.Equal(t, "5", got.ID())
	rating, ok := got.Get("rating")
	require.True(t, ok)
	require.Equal(t, 92.5, rating)
	_, ok = got.Get("igdbId")
	require.False(t, ok)
}

func TestStore_UpdateEmptyPatchFails(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 5, "Outer Wilds", nil, nil)

	_, err := fx.store.Update(fx.ctx, catalog.TypeGames, "5", map[string]any{"id": 7}, nil)
	require.Error(t, err)
	require.True(t, catalog.IsValidation(err))
}

func TestStore_UpdatePreservesUnknownFieldsOnDisk(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	d := catalog.NewDescriptor()
	require.NoError(t, d.Set(5, "id"))
	d.SetTitle("Outer Wilds")
	require.NoError(t, d.Set(map[string]any{"popularity": 93.2}, "igdbMeta"))
	_, err := fx.store.Create(fx.ctx, catalog.TypeGames, d)
	require.NoError(t, err)

	_, err = fx.store.Update(fx.ctx, catalog.TypeGames, "5", map[string]any{"summary": "new"}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(fx.store.TypeDir(catalog.TypeGames), "5", catalog.DescriptorFilename))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "new", out["summary"])
	require.Equal(t, map[string]any{"popularity": 93.2}, out["igdbMeta"])
}

func TestStore_UpdateNilClearsField(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 5, "Outer Wilds", nil, nil)
	_, err := fx.store.Update(fx.ctx, catalog.TypeGames, "5", map[string]any{"summary": "stale"}, nil)
	require.NoError(t, err)

	_, err = fx.store.Update(fx.ctx, catalog.TypeGames, "5", map[string]any{"summary": nil}, nil)
	require.NoError(t, err)

	got, err := fx.store.Get(fx.ctx, catalog.TypeGames, "5")
	require.NoError(t, err)
	_, ok := got.Get("summary")
	require.False(t, ok)
}

func TestStore_DeleteRemovesEmptyDirOnly(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.addGame(t, 1, "Bare", nil, nil)
	fx.addGame(t, 2, "With Assets", nil, nil)
	coverPath := filepath.Join(fx.store.EntityDir(catalog.TypeGames, "2"), "cover.png")
	require.NoError(t, os.WriteFile(coverPath, []byte("png"), 0o644))

	require.NoError(t, fx.store.Delete(fx.ctx, catalog.TypeGames, "1", nil))
	require.NoDirExists(t, fx.store.EntityDir(catalog.TypeGames, "1"))

	require.NoError(t, fx.store.Delete(fx.ctx, catalog.TypeGames, "2", nil))
	require.DirExists(t, fx.store.EntityDir(catalog.TypeGames, "2"))
	require.FileExists(t, coverPath)
	require.NoFileExists(t, filepath.Join(fx.store.EntityDir(catalog.TypeGames, "2"), catalog.DescriptorFilename))
}

func TestStore_DeleteMissing(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	err := fx.store.Delete(fx.ctx, catalog.TypeGames, "404", nil)
	require.Error(t, err)
	require.True(t, catalog.IsNotFound(err))
}

func TestStore_NextGameID(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	id, err := fx.store.NextGameID(fx.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, id)

	fx.addGame(t, 3, "Three", nil, nil)
	fx.addGame(t, 17, "Seventeen", nil, nil)

	id, err = fx.store.NextGameID(fx.ctx)
	require.NoError(t, err)
	require.Equal(t, 18, id)
}
