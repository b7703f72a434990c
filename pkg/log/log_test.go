package log_test

import (
	"bytes"
	"context"
	"testing"

	"log/slog"

	"github.com/gamedex/gamedex/pkg/log"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesConfiguredOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lg, shutdown, err := log.NewLogger(log.LoggerConfig{
		Version: "test",
		Out:     &buf,
		Level:   slog.LevelInfo,
		JSON:    true,
	})
	require.NoError(t, err)
	defer shutdown()

	lg.Info("hello", "k", "v")
	require.Contains(t, buf.String(), `"msg":"hello"`)
	require.Contains(t, buf.String(), `"version":"test"`)

	buf.Reset()
	lg.Debug("below level")
	require.Empty(t, buf.String())
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	lg, th := log.NewTestLogger(nil)
	ctx := log.ContextWithLogger(context.Background(), lg)

	log.FromContext(ctx).Warn("captured", "n", 7)

	entries := log.FindEntries(th, func(e log.LoggedEntry) bool {
		return e.Msg == "captured" && e.Level == slog.LevelWarn
	})
	require.Len(t, entries, 1)
	require.Equal(t, int64(7), entries[0].Attrs["n"])
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	require.NotNil(t, log.FromContext(context.Background()))
	require.NotNil(t, log.FromContext(nil)) //nolint:staticcheck
}
