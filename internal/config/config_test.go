package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "NEO4J_URI", "WORKER_COUNT", "BATCH_SIZE", "SIMILAR_TOP_K", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 5, cfg.SimilarTopK)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/maps")
	t.Setenv("WORKER_COUNT", "3")
	t.Setenv("BATCH_SIZE", "many")
	t.Setenv("LOG_FILE", "/tmp/osuparse.log")

	cfg := Load()
	assert.Equal(t, "postgres://db/maps", cfg.DatabaseURL)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "/tmp/osuparse.log", cfg.LogFile)
}
