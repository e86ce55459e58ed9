package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// a broken telemetry.json5 must abort the command instead of being
// silently ignored
func TestRootCommandFailsOnBadTelemetryConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "telemetry.json5"),
		[]byte(`{otlp:`),
		0644,
	))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})

	rootCmd.SetArgs([]string{"cache", "list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err = rootCmd.ExecuteContext(context.Background())
	require.ErrorContains(t, err, "failed to setup telemetry")
}
