package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "file", cfg.Dataset.Source)
	assert.Equal(t, 20, cfg.Pagination.PageSize)
	assert.Equal(t, 500, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATASET_SOURCE", "mongo")
	t.Setenv("PAGINATION_PAGE_SIZE", "50")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mongo", cfg.Dataset.Source)
	assert.Equal(t, 50, cfg.Pagination.PageSize)
}

func TestUnmarshal_YAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
dataset:
  procedures_path: /srv/tuss.yaml
cache:
  ttl: 5m
  enabled: false
`)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "/srv/tuss.yaml", cfg.Dataset.ProceduresPath)
	assert.Equal(t, "data/products.json", cfg.Dataset.PlansPath)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Enabled)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		cfg := &Config{App: AppConfig{Env: env}}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, env)
		assert.NotNil(t, logger)
	}
}
