package application

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "empty input keeps defaults",
			yaml: "",
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "partial overlay keeps unset defaults",
			yaml: "logging:\n  level: debug\ncache:\n  enabled: true\n",
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.True(t, cfg.Cache.Enabled)
				assert.Equal(t, ".txt", cfg.Files.Extension)
			},
		},
		{
			name: "metrics endpoint",
			yaml: "metrics:\n  enabled: true\n  addr: 127.0.0.1:2112\n",
			want: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.Metrics.Enabled)
				assert.Equal(t, "127.0.0.1:2112", cfg.Metrics.Addr)
			},
		},
		{
			name:    "invalid log level",
			yaml:    "logging:\n  level: verbose\n",
			wantErr: "validation failed",
		},
		{
			name:    "extension without leading dot",
			yaml:    "files:\n  extension: txt\n",
			wantErr: "validation failed",
		},
		{
			name:    "bad metrics addr",
			yaml:    "metrics:\n  addr: not-an-addr\n",
			wantErr: "validation failed",
		},
		{
			name:    "malformed yaml",
			yaml:    "logging: [",
			wantErr: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votecount.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoggingConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LoggingConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LoggingConfig{Level: "info"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LoggingConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LoggingConfig{}.SlogLevel())
}
