package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"log_level": "debug",
		"log_format": "json",
		"output_format": "json",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoadConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cfg.json"), []byte(`{"log_level":"warn"}`), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := LoadConfig("cfg.json")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	schema := filepath.Join(t.TempDir(), "draft.schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{}`), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "custom schema", cfg: Config{SchemaPath: schema}},
		{name: "bad level", cfg: Config{LogLevel: "loud"}, wantErr: "'log_level' must be one of [debug info warn error]"},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, wantErr: "'log_format'"},
		{name: "bad output format", cfg: Config{OutputFormat: "yaml"}, wantErr: "'output_format'"},
		{name: "missing schema", cfg: Config{SchemaPath: "/nonexistent/schema.json"}, wantErr: "schema file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{LogLevel: "debug", Verbose: true}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "debug", merged.LogLevel)
	assert.Equal(t, "text", merged.LogFormat)
	assert.Equal(t, "text", merged.OutputFormat)
	assert.Equal(t, DefaultSchemaPath, merged.SchemaPath)
	assert.True(t, merged.Verbose)
	assert.Empty(t, cfg.LogFormat, "receiver must not change")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvOutputFormat, "json")
	t.Setenv(EnvSchemaPath, "/tmp/custom.schema.json")

	cfg := Defaults()
	got := cfg.ApplyEnv()

	assert.Equal(t, "warn", got.LogLevel)
	assert.Equal(t, "text", got.LogFormat)
	assert.Equal(t, "json", got.OutputFormat)
	assert.Equal(t, "/tmp/custom.schema.json", got.SchemaPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		cfg  Config
		want slog.Level
	}{
		{Config{}, slog.LevelInfo},
		{Config{LogLevel: "debug"}, slog.LevelDebug},
		{Config{LogLevel: "warn"}, slog.LevelWarn},
		{Config{LogLevel: "error"}, slog.LevelError},
		{Config{LogLevel: "error", Verbose: true}, slog.LevelDebug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cfg.SlogLevel(), "%+v", tt.cfg)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogFormat: "json", LogLevel: "warn"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.NewLogger(&buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
