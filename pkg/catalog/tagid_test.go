package catalog_test

import (
	"testing"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/stretchr/testify/require"
)

func TestDeriveTagID_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := catalog.DeriveTagID("Action")
	require.NoError(t, err)
	b, err := catalog.DeriveTagID("Action")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.GreaterOrEqual(t, a, 0)
}

func TestDeriveTagID_CaseAndWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	base, err := catalog.DeriveTagID("Action")
	require.NoError(t, err)

	for _, variant := range []string{"action", "ACTION", "  Action  ", "aCtIoN"} {
		got, err := catalog.DeriveTagID(variant)
		require.NoError(t, err)
		require.Equal(t, base, got, "variant %q", variant)
	}

	other, err := catalog.DeriveTagID("Adventure")
	require.NoError(t, err)
	require.NotEqual(t, base, other)
}

func TestDeriveTagID_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := catalog.DeriveTagID(title)
		require.Error(t, err)
		require.ErrorIs(t, err, catalog.ErrInvalidTitle)
	}
}

func TestTagKey_DecimalString(t *testing.T) {
	t.Parallel()

	id, err := catalog.DeriveTagID("Role-Playing")
	require.NoError(t, err)
	key, err := catalog.TagKey("Role-Playing")
	require.NoError(t, err)
	require.Equal(t, catalog.Key(id), key)
}

func TestKey_NormalizesIdentifierShapes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "5", catalog.Key(5))
	require.Equal(t, "5", catalog.Key(float64(5)))
	require.Equal(t, "5", catalog.Key(" 5 "))
	require.Equal(t, "5", catalog.Key(int64(5)))
	require.Equal(t, "", catalog.Key(nil))
	require.Equal(t, "s1", catalog.Key("s1"))
}
