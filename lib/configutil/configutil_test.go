package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Database struct {
		File string `json:"file" yaml:"file"`
	} `json:"database" yaml:"database"`
	MinRequestSeconds int `json:"min_request_seconds" yaml:"min_request_seconds"`
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestReadConfigJson5(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeTestFile(t, name, `{
		// comments are allowed
		database: { file: "cache.db" },
		min_request_seconds: 8,
	}`)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "cache.db", config.Database.File)
	require.Equal(t, 8, config.MinRequestSeconds)
}

func TestReadConfigYaml(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.yaml")
	writeTestFile(t, name, "database:\n  file: cache.db\nmin_request_seconds: 3\n")

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "cache.db", config.Database.File)
	require.Equal(t, 3, config.MinRequestSeconds)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "config.json5"), `{
		database: { file: "cache.db" },
		min_request_seconds: 8,
	}`)
	writeTestFile(t, filepath.Join(dir, "config.local.json5"), `{
		min_request_seconds: 1,
	}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "cache.db", config.Database.File)
	require.Equal(t, 1, config.MinRequestSeconds)
}

func TestReadConfigNotFound(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.toml")
	writeTestFile(t, name, "whatever = true\n")

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
}
