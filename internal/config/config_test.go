package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"officeHub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults проверяет значения по умолчанию при отсутствии файла
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, config.RepositorySQLite, cfg.Repository.Type)
	assert.Equal(t, "officehub.db", cfg.SQLite.Path)
	assert.Equal(t, 5*time.Minute, cfg.Worker.Interval)
	assert.Equal(t, "password", cfg.Auth.SentinelPassword)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
logging:
  development: false
repository:
  type: inmemory
worker:
  enabled: true
  interval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, config.RepositoryInMemory, cfg.Repository.Type)
	assert.Equal(t, 30*time.Second, cfg.Worker.Interval)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OFFICEHUB_REPOSITORY_TYPE", "inmemory")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.RepositoryInMemory, cfg.Repository.Type)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		expectError bool
	}{
		{
			name:        "inmemory - ok",
			cfg:         config.Config{Repository: config.RepositoryConfig{Type: "inmemory"}},
			expectError: false,
		},
		{
			name:        "postgres without url",
			cfg:         config.Config{Repository: config.RepositoryConfig{Type: "postgres"}},
			expectError: true,
		},
		{
			name:        "unknown repository type",
			cfg:         config.Config{Repository: config.RepositoryConfig{Type: "redis"}},
			expectError: true,
		},
		{
			name: "worker without interval",
			cfg: config.Config{
				Repository: config.RepositoryConfig{Type: "inmemory"},
				Worker:     config.WorkerConfig{Enabled: true},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
