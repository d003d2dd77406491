package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
server:
  host: "127.0.0.1"
  port: 8600
  mode: "test"
pipeline:
  depiction_size: 240
  rules:
    max_violations: 0
artifacts:
  backend: "memory"
  ttl: 30m
kafka:
  enabled: true
  brokers: ["kafka-1:9092", "kafka-2:9092"]
  topic: "runs"
log:
  level: "debug"
  format: "console"
`

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8600", cfg.Server.Addr())
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, 240, cfg.Pipeline.DepictionSize)
	assert.Equal(t, 0, cfg.Pipeline.Rules.MaxViolations, "explicit zero must survive defaults")
	assert.Equal(t, 30*time.Minute, cfg.Artifacts.TTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "runs", cfg.Kafka.Topic)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched sections fall back to defaults
	assert.Equal(t, DefaultStructureColumn, cfg.Pipeline.StructureColumn)
	assert.Equal(t, DefaultMaxMolecularWeight, cfg.Pipeline.Rules.MaxMolecularWeight)
	assert.Equal(t, DefaultMinIOBucket, cfg.MinIO.Bucket)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "server: [")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := createTempConfigFile(t, "artifacts:\n  backend: \"disk\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts.backend")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("PRIORITIZER_SERVER_PORT", "9999")
	t.Setenv("PRIORITIZER_PIPELINE_RULES_MAX_LOGP", "4.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 4.5, cfg.Pipeline.Rules.MaxLogP)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultMaxViolations, cfg.Pipeline.Rules.MaxViolations)
	assert.Equal(t, DefaultDepictionSize, cfg.Pipeline.DepictionSize)
	assert.Equal(t, "memory", cfg.Artifacts.Backend)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PRIORITIZER_ARTIFACTS_BACKEND", "redis")
	t.Setenv("PRIORITIZER_REDIS_ADDR", "cache:6379")
	t.Setenv("PRIORITIZER_MINIO_ENABLED", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Artifacts.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.True(t, cfg.MinIO.Enabled)
}

func TestLoadOrDefault_EmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScoreColumn, cfg.Pipeline.ScoreColumn)
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	changed := make(chan *Config, 4)
	err := Watch(path, func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	}, nil)
	require.NoError(t, err)

	updated := "pipeline:\n  depiction_size: 320\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case c := <-changed:
		assert.Equal(t, 320, c.Pipeline.DepictionSize)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {}, nil)
	assert.Error(t, err)
}

//Personal.AI order the ending
