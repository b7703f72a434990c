package catalog_test

import (
	"testing"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/stretchr/testify/require"
)

func TestLoadRecommended_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	r, err := fx.store.LoadRecommended(fx.ctx)
	require.NoError(t, err)
	require.False(t, r.Legacy)
	require.Empty(t, r.GameIDs())
}

func TestLoadRecommended_ShapeDetection(t *testing.T) {
	t.Parallel()

	t.Run("legacy identifier array", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		fx.writeRecommended(t, []any{5, 9, "8"})

		r, err := fx.store.LoadRecommended(fx.ctx)
		require.NoError(t, err)
		require.True(t, r.Legacy)
		require.Equal(t, []string{"5", "9", "8"}, r.GameIDs())
	})

	t.Run("section objects", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		fx.writeRecommended(t, []any{
			map[string]any{"id": "s1", "games": []any{5, 9}},
			map[string]any{"id": "s2", "games": []any{8}},
		})

		r, err := fx.store.LoadRecommended(fx.ctx)
		require.NoError(t, err)
		require.False(t, r.Legacy)
		require.Len(t, r.Sections, 2)
		require.Equal(t, []string{"5", "9", "8"}, r.GameIDs())
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		fx := newFixture(t)
		fx.writeRecommended(t, []any{})

		r, err := fx.store.LoadRecommended(fx.ctx)
		require.NoError(t, err)
		require.False(t, r.Legacy)
		require.Empty(t, r.GameIDs())
	})
}

func TestRemoveGameFromRecommended_Legacy(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.writeRecommended(t, []any{5, 9, 5, 8})

	changed, err := fx.store.RemoveGameFromRecommended(fx.ctx, "5")
	require.NoError(t, err)
	require.True(t, changed)

	require.Equal(t, []any{float64(9), float64(8)}, fx.readRecommendedRaw(t))
}

func TestRemoveGameFromRecommended_Sections(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	fx.writeRecommended(t, []any{
		map[string]any{"id": "s1", "title": "Staff Picks", "games": []any{5, 9, 8}},
		map[string]any{"id": "s2", "games": []any{7, 5, 6}},
	})

	changed, err := fx.store.RemoveGameFromRecommended(fx.ctx, "5")
	require.NoError(t, err)
	require.True(t, changed)

	out := fx.readRecommendedRaw(t)
	require.Len(t, out, 2)

	s1, ok := out[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "s1", s1["id"])
	require.Equal(t, "Staff Picks", s1["title"])
	require.Equal(t, []any{float64(9), float64(8)}, s1["games"])

	s2, ok := out[1].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []any{float64(7), float64(6)}, s2["games"])
}

func TestRemoveGameFromRecommended_NoChangeNoWrite(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	changed, err := fx.store.RemoveGameFromRecommended(fx.ctx, "5")
	require.NoError(t, err)
	require.False(t, changed)

	fx.writeRecommended(t, []any{9, 8})
	changed, err = fx.store.RemoveGameFromRecommended(fx.ctx, "5")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, []any{float64(9), float64(8)}, fx.readRecommendedRaw(t))
}

func TestSaveRecommended_PreservesShape(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	r := &catalog.Recommended{Legacy: true, IDs: []any{1, 2, 3}}
	require.NoError(t, fx.store.SaveRecommended(fx.ctx, r))

	reread, err := fx.store.LoadRecommended(fx.ctx)
	require.NoError(t, err)
	require.True(t, reread.Legacy)
	require.Equal(t, []string{"1", "2", "3"}, reread.GameIDs())
}
