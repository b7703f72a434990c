package catalog_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/gamedex/gamedex/pkg/log"
	"github.com/stretchr/testify/require"
)

// fixture bundles a store rooted in a temp directory with a context carrying
// a test logger.
type fixture struct {
	ctx   context.Context
	store *catalog.Store
	th    *log.TestHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lg, th := log.NewTestLogger(nil)
	ctx := log.ContextWithLogger(context.Background(), lg)
	return &fixture{
		ctx:   ctx,
		store: catalog.NewStore(t.TempDir()),
		th:    th,
	}
}

// addGame creates a game descriptor with optional release date and tag
// lists.
func (fx *fixture) addGame(t *testing.T, id int, title string, rd *catalog.ReleaseDate, tags map[string][]string) *catalog.Descriptor {
	t.Helper()
	d := catalog.NewDescriptor()
	require.NoError(t, d.Set(id, "id"))
	d.SetTitle(title)
	if rd != nil {
		d.SetReleaseDate(*rd)
	}
	for field, titles := range tags {
		d.SetTagList(field, titles)
	}
	created, err := fx.store.Create(fx.ctx, catalog.TypeGames, d)
	require.NoError(t, err)
	return created
}

// addCollection creates a collection with the given members.
func (fx *fixture) addCollection(t *testing.T, id int, title string, gameIDs []string) *catalog.Descriptor {
	t.Helper()
	d := catalog.NewDescriptor()
	require.NoError(t, d.Set(id, "id"))
	d.SetTitle(title)
	d.SetGameIDs(gameIDs)
	created, err := fx.store.Create(fx.ctx, catalog.TypeCollections, d)
	require.NoError(t, err)
	return created
}

// writeRecommended writes the recommended-sections file verbatim.
func (fx *fixture) writeRecommended(t *testing.T, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	dir := filepath.Join(fx.store.ContentDir(), catalog.RecommendedDirname)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.DescriptorFilename), data, 0o644))
}

// readRecommendedRaw parses the recommended file back into generic JSON.
func (fx *fixture) readRecommendedRaw(t *testing.T) []any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fx.store.ContentDir(), catalog.RecommendedDirname, catalog.DescriptorFilename))
	require.NoError(t, err)
	var out []any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func year(y int) *catalog.ReleaseDate { return &catalog.ReleaseDate{Year: y} }
