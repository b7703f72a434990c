package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/gamedex/gamedex/pkg/cli"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against a store rooted in a temp dir and
// returns stdout.
func execute(t *testing.T, store *catalog.Store, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(&cli.Deps{Store: store})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newStore(t *testing.T) *catalog.Store {
	t.Helper()
	return catalog.NewStore(t.TempDir())
}

func TestCLI_CreateAndListCollections(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	out, err := execute(t, store, "create", "collection", "10", "Favorites")
	require.NoError(t, err)
	require.Contains(t, out, "created collection 10")

	out, err = execute(t, store, "list", "collections")
	require.NoError(t, err)
	require.Contains(t, out, "Favorites")
	require.Contains(t, out, "0 games")
}

func TestCLI_CreateTagAndList(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	out, err := execute(t, store, "create", "tag", "categories", "Action")
	require.NoError(t, err)
	require.Contains(t, out, "Action")

	out, err = execute(t, store, "tags", "categories", "--counts")
	require.NoError(t, err)
	require.Contains(t, out, "Action")
	require.Contains(t, out, "0")
}

func TestCLI_CreateTagConflict(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	_, err := execute(t, store, "create", "tag", "categories", "Action")
	require.NoError(t, err)

	_, err = execute(t, store, "create", "tag", "categories", "ACTION")
	require.Error(t, err)
	require.True(t, catalog.IsConflict(err))
}

func TestCLI_RmGameCascades(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	d := catalog.NewDescriptor()
	d.SetID("5")
	d.SetTitle("Departing")
	_, err := store.Create(ctx, catalog.TypeGames, d)
	require.NoError(t, err)

	_, err = execute(t, store, "create", "collection", "10", "Favorites")
	require.NoError(t, err)
	_, err = store.SetMembership(ctx, "10", []string{"5"}, nil)
	require.NoError(t, err)

	_, err = execute(t, store, "rm", "game", "5")
	require.NoError(t, err)

	_, err = store.Get(ctx, catalog.TypeGames, "5")
	require.True(t, catalog.IsNotFound(err))

	n, err := store.CollectionGameCount(ctx, "10")
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestCLI_ImportMarkdown(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	doc := `---
releaseDate:
  year: 2018
genre:
  - Platformer
---

# Celeste

Climb the mountain.
`
	path := filepath.Join(t.TempDir(), "celeste.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, store, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, `imported "Celeste" as game 1`)

	game, err := store.Get(ctx, catalog.TypeGames, "1")
	require.NoError(t, err)
	require.Equal(t, "Celeste", game.Title())
	require.Equal(t, "Climb the mountain.", game.Summary())
	require.Equal(t, []string{"Platformer"}, game.TagList("genre"))

	// The attached genre was ensured in its taxonomy.
	key, err := catalog.TagKey("Platformer")
	require.NoError(t, err)
	tag, err := store.Get(ctx, catalog.TypeGenres, key)
	require.NoError(t, err)
	require.Equal(t, "Platformer", tag.Title())
}

func TestCLI_UnknownType(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	_, err := execute(t, store, "list", "gizmos")
	require.Error(t, err)
}
