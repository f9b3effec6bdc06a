package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/descobre-saude/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_FilesOnly(t *testing.T) {
	cfg := &config.Config{}
	opts := seedOptions{
		proceduresPath: "../../data/tuss.json",
		plansPath:      "../../data/products.json",
		skipMongo:      true,
	}
	assert.NoError(t, run(cfg, opts, zap.NewNop()))
}

func TestRun_ReturnsLoadError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "tuss.csv")
	require.NoError(t, os.WriteFile(bad, []byte("codigo,descricao"), 0o644))

	err := run(&config.Config{}, seedOptions{
		proceduresPath: bad,
		plansPath:      "../../data/products.json",
		skipMongo:      true,
	}, zap.NewNop())
	assert.ErrorContains(t, err, "read dataset files")
}
