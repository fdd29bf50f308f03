package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	setArgs(t)
	t.Setenv("GOPHAUTH_SERVER", "")

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_endpoint_addr": "json:1",
		"request_timeout":      "7s",
	})

	t.Run("json only", func(t *testing.T) {
		setArgs(t, "-c", path)
		t.Setenv("GOPHAUTH_SERVER", "")

		cfg := LoadConfig()
		assert.Equal(t, "json:1", cfg.ServerEndpointAddr)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	})

	t.Run("env beats json", func(t *testing.T) {
		setArgs(t, "-c", path)
		t.Setenv("GOPHAUTH_SERVER", "env:2")

		cfg := LoadConfig()
		assert.Equal(t, "env:2", cfg.ServerEndpointAddr)
	})

	t.Run("flags beat env", func(t *testing.T) {
		setArgs(t, "-c", path, "-a", "flag:3", "-t", "9")
		t.Setenv("GOPHAUTH_SERVER", "env:2")

		cfg := LoadConfig()
		assert.Equal(t, "flag:3", cfg.ServerEndpointAddr)
		assert.Equal(t, 9*time.Second, cfg.RequestTimeout)
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "ok", args: []string{"-a", "127.0.0.1:9090", "-t", "10"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", RequestTimeout: 10 * time.Second}},
		{name: "foreign flags ignored", args: []string{"-x", "1", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1"}},
		{name: "incorrect timeout", args: []string{"-a", "127.0.0.1:9090", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

func TestParseJson(t *testing.T) {
	t.Run("no config flag → no changes", func(t *testing.T) {
		setArgs(t)

		cfg := &Config{ServerEndpointAddr: "defaults:1234", RequestTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		setArgs(t, "-config", writeTempJSON(t, map[string]any{"request_timeout": "2s"}))

		cfg := &Config{ServerEndpointAddr: "keep:1"}
		parseJson(cfg)

		assert.Equal(t, "keep:1", cfg.ServerEndpointAddr)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		setArgs(t, "-config", bad)

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		setArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
