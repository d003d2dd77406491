// Package config defines the configuration structures of the prioritizer.
// Only plain data types and validation live in this file; loading is in
// loader.go and defaults in defaults.go.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadSize   int64         `mapstructure:"max_upload_size"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RuleConfig holds the drug-likeness rule thresholds.  A rule is violated when
// the descriptor is strictly greater than its threshold.
type RuleConfig struct {
	MaxMolecularWeight float64 `mapstructure:"max_molecular_weight"`
	MaxLogP            float64 `mapstructure:"max_logp"`
	MaxHDonors         int     `mapstructure:"max_h_donors"`
	MaxHAcceptors      int     `mapstructure:"max_h_acceptors"`

	// MaxViolations is the largest violation count still classified as Pass.
	MaxViolations int `mapstructure:"max_violations"`
}

// AdmetConfig holds the thresholds of the coarse ADMET heuristic:
// Good iff logP < MaxLogP and HBD <= MaxHDonors.
type AdmetConfig struct {
	MaxLogP    float64 `mapstructure:"max_logp"`
	MaxHDonors int     `mapstructure:"max_h_donors"`
}

// PipelineConfig parameterises one evaluation run.  The api server snapshots
// it at the start of every request.
type PipelineConfig struct {
	StructureColumn string      `mapstructure:"structure_column"`
	ScoreColumn     string      `mapstructure:"score_column"`
	Rules           RuleConfig  `mapstructure:"rules"`
	Admet           AdmetConfig `mapstructure:"admet"`
	DepictionSize   int         `mapstructure:"depiction_size"`
	SkipDepictions  bool        `mapstructure:"skip_depictions"`
	MaxRecords      int         `mapstructure:"max_records"`
}

// ArtifactsConfig controls where finished runs are kept for download.
type ArtifactsConfig struct {
	Backend         string        `mapstructure:"backend"` // "memory" | "redis"
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters used to
// publish run artifacts.
type MinIOConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	Bucket        string        `mapstructure:"bucket"`
	Region        string        `mapstructure:"region"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// KafkaConfig holds the run-event producer and tail consumer parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	ClientID     string        `mapstructure:"client_id"`
	GroupID      string        `mapstructure:"group_id"`
	RequiredAcks int           `mapstructure:"required_acks"`
	Compression  string        `mapstructure:"compression"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	Path                 string `mapstructure:"path"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// LoggingConfig converts to the logging package's construction parameters.
func (l LogConfig) LoggingConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:       l.Level,
		Format:      l.Format,
		OutputPaths: l.OutputPaths,
	}
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// Validate performs semantic validation of a fully populated Config and
// returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.MaxUploadSize < 1 {
		return fmt.Errorf("config: server.max_upload_size must be ≥ 1, got %d", c.Server.MaxUploadSize)
	}

	if err := c.Pipeline.Validate(); err != nil {
		return err
	}

	switch c.Artifacts.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when artifacts.backend is redis")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	default:
		return fmt.Errorf("config: artifacts.backend %q is invalid; expected memory|redis", c.Artifacts.Backend)
	}
	if c.Artifacts.TTL <= 0 {
		return fmt.Errorf("config: artifacts.ttl must be positive")
	}

	if c.MinIO.Enabled {
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required when minio is enabled")
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("config: minio.bucket is required when minio is enabled")
		}
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka is enabled")
		}
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

// Validate checks the pipeline section on its own; the api server calls it
// before swapping in a hot-reloaded snapshot.
func (p PipelineConfig) Validate() error {
	if p.StructureColumn == "" || p.ScoreColumn == "" {
		return fmt.Errorf("config: pipeline.structure_column and pipeline.score_column are required")
	}
	if p.StructureColumn == p.ScoreColumn {
		return fmt.Errorf("config: pipeline.structure_column and pipeline.score_column must differ")
	}
	if p.Rules.MaxMolecularWeight <= 0 || p.Rules.MaxLogP <= 0 || p.Rules.MaxHDonors < 0 || p.Rules.MaxHAcceptors < 0 {
		return fmt.Errorf("config: pipeline.rules thresholds must be positive")
	}
	if p.Rules.MaxViolations < 0 || p.Rules.MaxViolations > 4 {
		return fmt.Errorf("config: pipeline.rules.max_violations %d is out of range [0, 4]", p.Rules.MaxViolations)
	}
	if p.DepictionSize < 50 || p.DepictionSize > 1000 {
		return fmt.Errorf("config: pipeline.depiction_size %d is out of range [50, 1000]", p.DepictionSize)
	}
	if p.MaxRecords < 0 {
		return fmt.Errorf("config: pipeline.max_records must be ≥ 0, got %d", p.MaxRecords)
	}
	return nil
}

//Personal.AI order the ending
