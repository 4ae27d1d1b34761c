package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfigWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, Default(), cfg)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestLoadReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: 127.0.0.1:4000\nshutdown_timeout: 2s\ntyping_scope: global\nclient_buffer: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:4000", cfg.Addr)
	require.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "global", cfg.TypingScope)
	require.Equal(t, 8, cfg.ClientBuffer)
	// Untouched keys keep their defaults.
	require.Equal(t, Default().ReadHeaderTimeout, cfg.ReadHeaderTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: 127.0.0.1:4000\n"), 0o600))
	t.Setenv("RELAY_ADDR", "127.0.0.1:5000")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:5000", cfg.Addr)
}

func TestLoadRejectsUnknownTypingScope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("typing_scope: everywhere\n"), 0o600))

	_, _, err := Load(nil, path)
	require.Error(t, err)
}

func TestUpdateFromOverridesNonZero(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", LogLevel: "debug"})

	require.Equal(t, ":1234", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, Default().ShutdownTimeout, cfg.ShutdownTimeout)
}
