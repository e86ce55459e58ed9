package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func TestSetupFromEnvMissingConfig(t *testing.T) {
	chdir(t, t.TempDir())

	tel, err := SetupFromEnv(context.Background(), "telemetry-test")
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupFromEnvBadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "telemetry.json5"),
		[]byte(`{otlp:`),
		0644,
	))
	chdir(t, dir)

	_, err := SetupFromEnv(context.Background(), "telemetry-test")
	require.Error(t, err)
}
