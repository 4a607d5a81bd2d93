package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "address: \":9090\"\nsession_idle_timeout: 60\ncatalog_path: /srv/catalog.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadServer(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "/srv/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, time.Minute, cfg.IdleTimeout())
	assert.Equal(t, DefaultServer().DatabasePath, cfg.DatabasePath, "unset keys keep defaults")
	assert.Equal(t, 30*time.Second, cfg.Sweep())
}

func TestLoadServerRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad yaml":      "address: [",
		"empty address": "address: \"\"\n",
		"zero timeout":  "session_idle_timeout: 0\n",
		"negative ttl":  "session_ttl: -5\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadServer(path)
			assert.Error(t, err)
		})
	}
}

func TestAllowsOrigin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "allowed_origins:\n  - https://arena.example.com/\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadServer(path)
	require.NoError(t, err)
	assert.True(t, cfg.AllowsOrigin("https://arena.example.com"))
	assert.True(t, cfg.AllowsOrigin("HTTPS://Arena.Example.com"))
	assert.False(t, cfg.AllowsOrigin("https://evil.example.com"))
	assert.False(t, DefaultServer().AllowsOrigin("https://arena.example.com"))
}
