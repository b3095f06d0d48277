package viper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "log:\n  level: debug\n  stdout: true\n")

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "debug", cfg.GetString("log.level"))
	assert.True(t, cfg.GetBool("log.stdout"))
}

func TestLoadJSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"log":{"level":"warn"}}`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "warn", cfg.GetString("log.level"))
}

func TestEnvOverride(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "log:\n  level: info\n")
	t.Setenv("RECORDGARDEN_LOG_LEVEL", "error")

	cfg := New().BindEnv("recordgarden")
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "error", cfg.GetString("log.level"))
}

func TestDefaults(t *testing.T) {
	cfg := New()
	cfg.SetDefault("log.level", "info")

	assert.Equal(t, "info", cfg.GetString("log.level"))
}

func TestUnmarshalKey(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "log:\n  level: debug\n  format: json\n")

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	var section struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}
	require.NoError(t, cfg.UnmarshalKey("log", &section))
	assert.Equal(t, "debug", section.Level)
	assert.Equal(t, "json", section.Format)
}

func TestMissingFile(t *testing.T) {
	cfg := New()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
}
