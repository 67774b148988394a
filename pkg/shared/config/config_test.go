package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
logger:
  level: debug
http_client:
  retry_count: 5
  timeout: 10s
  proxy:
    host: proxy.local
    port: "3128"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5, cfg.HTTPClient.RetryCount)
	assert.Equal(t, 10*time.Second, cfg.HTTPClient.Timeout)
	assert.Equal(t, "proxy.local", cfg.HTTPClient.Proxy.Host)
}

func TestLoadConfigMissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("logger: [broken"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "defaults are valid",
			cfg:  &Config{},
		},
		{
			name:    "nil config rejected",
			cfg:     nil,
			wantErr: "configuration object is nil",
		},
		{
			name:    "negative retry count rejected",
			cfg:     &Config{HTTPClient: HTTPClient{RetryCount: -1}},
			wantErr: "retry_count must not be negative",
		},
		{
			name:    "excessive timeout rejected",
			cfg:     &Config{HTTPClient: HTTPClient{Timeout: 2 * time.Hour}},
			wantErr: "timeout must not exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, 3, SetThen(0, 3))
	assert.Equal(t, 7, SetThen(7, 3))
	assert.Equal(t, time.Second, SetThen(time.Duration(0), time.Second))
	assert.Equal(t, "kept", SetThen("kept", "default"))
}
