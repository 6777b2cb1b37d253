package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigPath(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr string
	}{
		{"gateway.port", []string{"gateway", "port"}, ""},
		{"pipeline.maxPages", []string{"pipeline", "maxPages"}, ""},
		{"gateway.controlUi.allowedOrigins", []string{"gateway", "controlUi", "allowedOrigins"}, ""},
		{"logging", []string{"logging"}, ""},
		{"", nil, "empty config path"},
		{"pipeline..dpi", nil, "empty segment"},
		{"pipeline.", nil, "empty segment"},
		{"channels.irc", nil, `unknown config section "channels"`},
		{"Gateway.port", nil, "unknown config section"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseConfigPath(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				var cerr *ConfigError
				assert.ErrorAs(t, err, &cerr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetValueAtPath(t *testing.T) {
	root := map[string]any{
		"pipeline": map[string]any{
			"ocrModel": "gemini-2.5-flash",
			"models":   []any{"gemini-2.5-flash"},
		},
		"gemini": "not-a-map",
	}

	tests := []struct {
		name string
		path []string
		want any
		ok   bool
	}{
		{"leaf", []string{"pipeline", "ocrModel"}, "gemini-2.5-flash", true},
		{"section", []string{"pipeline"}, root["pipeline"], true},
		{"list", []string{"pipeline", "models"}, []any{"gemini-2.5-flash"}, true},
		{"missing leaf", []string{"pipeline", "dpi"}, nil, false},
		{"missing section", []string{"metrics", "store"}, nil, false},
		{"through scalar", []string{"gemini", "apiKey"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetValueAtPath(root, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetValueAtPath(t *testing.T) {
	root := map[string]any{
		"gateway": map[string]any{"port": 18789},
		"metrics": "memory",
	}

	SetValueAtPath(root, []string{"gateway", "port"}, 9999)
	SetValueAtPath(root, []string{"gateway", "tls", "enabled"}, true)
	SetValueAtPath(root, []string{"metrics", "store"}, "sqlite") // replaces the scalar
	SetValueAtPath(root, []string{"agents"}, []any{})

	assert.Equal(t, map[string]any{
		"gateway": map[string]any{
			"port": 9999,
			"tls":  map[string]any{"enabled": true},
		},
		"metrics": map[string]any{"store": "sqlite"},
		"agents":  []any{},
	}, root)
}

func TestUnsetValueAtPath(t *testing.T) {
	root := map[string]any{
		"gateway": map[string]any{"port": 18789, "bind": "loopback"},
		"gemini":  "scalar",
	}

	assert.True(t, UnsetValueAtPath(root, []string{"gateway", "port"}))
	assert.Equal(t, map[string]any{"bind": "loopback"}, root["gateway"])

	assert.False(t, UnsetValueAtPath(root, []string{"gateway", "port"}))
	assert.False(t, UnsetValueAtPath(root, []string{"pipeline", "dpi"}))
	assert.False(t, UnsetValueAtPath(root, []string{"gemini", "apiKey"}))
}

func TestResolvePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("REVIEWDESK_HOME", home)

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, Paths{
		Base:   home,
		Config: filepath.Join(home, "config.yaml"),
		DotEnv: filepath.Join(home, ".env"),
		Logs:   filepath.Join(home, "logs"),
	}, paths)
}

func TestResolvePathsDefaultsUnderHome(t *testing.T) {
	t.Setenv("REVIEWDESK_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".reviewdesk"), paths.Base)
}

func TestEnsureDirs(t *testing.T) {
	t.Setenv("REVIEWDESK_HOME", filepath.Join(t.TempDir(), "nested", "home"))
	paths, err := ResolvePaths()
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, paths.EnsureDirs())

	for _, d := range []string{paths.Base, paths.Logs} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
