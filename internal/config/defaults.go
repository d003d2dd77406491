package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8501
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxUploadSize   = 200 << 20

	DefaultStructureColumn    = "SMILES"
	DefaultScoreColumn        = "Docking_Score"
	DefaultMaxMolecularWeight = 500.0
	DefaultMaxLogP            = 5.0
	DefaultMaxHDonors         = 5
	DefaultMaxHAcceptors      = 10
	DefaultMaxViolations      = 1
	DefaultDepictionSize      = 200
	DefaultMaxRecords         = 10000

	DefaultArtifactsBackend = "memory"
	DefaultArtifactsTTL     = time.Hour
	DefaultCleanupInterval  = 10 * time.Minute

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisTimeout   = 3 * time.Second
	DefaultRedisKeyPrefix = "prioritizer:"

	DefaultMinIOEndpoint      = "localhost:9000"
	DefaultMinIOBucket        = "prioritizer-runs"
	DefaultMinIORegion        = "us-east-1"
	DefaultMinIOPresignExpiry = 24 * time.Hour

	DefaultKafkaBroker       = "localhost:9092"
	DefaultKafkaTopic        = "prioritizer.run.completed"
	DefaultKafkaClientID     = "admet-prioritizer"
	DefaultKafkaGroupID      = "admet-prioritizer-tail"
	DefaultKafkaRequiredAcks = -1
	DefaultKafkaCompression  = "snappy"
	DefaultKafkaBatchTimeout = 10 * time.Millisecond
	DefaultKafkaWriteTimeout = 10 * time.Second

	DefaultMetricsNamespace = "prioritizer"
	DefaultMetricsPath      = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// NewDefaultConfig returns a Config with every field at its default, suitable
// for running the CLI without any configuration file.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Pipeline: PipelineConfig{
			Rules: RuleConfig{MaxViolations: DefaultMaxViolations},
		},
		Metrics: MetricsConfig{Enabled: true, EnableGoMetrics: true, EnableProcessMetrics: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// DefaultPipelineConfig returns the default pipeline section.
func DefaultPipelineConfig() PipelineConfig {
	return NewDefaultConfig().Pipeline
}

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// already set are left unchanged.  MaxViolations and the boolean switches are
// not touched because their zero value is meaningful.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxUploadSize == 0 {
		cfg.Server.MaxUploadSize = DefaultMaxUploadSize
	}

	p := &cfg.Pipeline
	if p.StructureColumn == "" {
		p.StructureColumn = DefaultStructureColumn
	}
	if p.ScoreColumn == "" {
		p.ScoreColumn = DefaultScoreColumn
	}
	if p.Rules.MaxMolecularWeight == 0 {
		p.Rules.MaxMolecularWeight = DefaultMaxMolecularWeight
	}
	if p.Rules.MaxLogP == 0 {
		p.Rules.MaxLogP = DefaultMaxLogP
	}
	if p.Rules.MaxHDonors == 0 {
		p.Rules.MaxHDonors = DefaultMaxHDonors
	}
	if p.Rules.MaxHAcceptors == 0 {
		p.Rules.MaxHAcceptors = DefaultMaxHAcceptors
	}
	if p.Admet.MaxLogP == 0 {
		p.Admet.MaxLogP = DefaultMaxLogP
	}
	if p.Admet.MaxHDonors == 0 {
		p.Admet.MaxHDonors = DefaultMaxHDonors
	}
	if p.DepictionSize == 0 {
		p.DepictionSize = DefaultDepictionSize
	}
	if p.MaxRecords == 0 {
		p.MaxRecords = DefaultMaxRecords
	}

	if cfg.Artifacts.Backend == "" {
		cfg.Artifacts.Backend = DefaultArtifactsBackend
	}
	if cfg.Artifacts.TTL == 0 {
		cfg.Artifacts.TTL = DefaultArtifactsTTL
	}
	if cfg.Artifacts.CleanupInterval == 0 {
		cfg.Artifacts.CleanupInterval = DefaultCleanupInterval
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = DefaultRedisTimeout
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.Region == "" {
		cfg.MinIO.Region = DefaultMinIORegion
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = DefaultMinIOPresignExpiry
	}

	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.ClientID == "" {
		cfg.Kafka.ClientID = DefaultKafkaClientID
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.RequiredAcks == 0 {
		cfg.Kafka.RequiredAcks = DefaultKafkaRequiredAcks
	}
	if cfg.Kafka.Compression == "" {
		cfg.Kafka.Compression = DefaultKafkaCompression
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = DefaultKafkaBatchTimeout
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// registerDefaults seeds v with defaults for the keys whose zero value is
// meaningful, and for every section key so AutomaticEnv can resolve
// PRIORITIZER_* overrides without a config file.
func registerDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_upload_size", d.Server.MaxUploadSize)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)

	v.SetDefault("pipeline.structure_column", d.Pipeline.StructureColumn)
	v.SetDefault("pipeline.score_column", d.Pipeline.ScoreColumn)
	v.SetDefault("pipeline.rules.max_molecular_weight", d.Pipeline.Rules.MaxMolecularWeight)
	v.SetDefault("pipeline.rules.max_logp", d.Pipeline.Rules.MaxLogP)
	v.SetDefault("pipeline.rules.max_h_donors", d.Pipeline.Rules.MaxHDonors)
	v.SetDefault("pipeline.rules.max_h_acceptors", d.Pipeline.Rules.MaxHAcceptors)
	v.SetDefault("pipeline.rules.max_violations", d.Pipeline.Rules.MaxViolations)
	v.SetDefault("pipeline.admet.max_logp", d.Pipeline.Admet.MaxLogP)
	v.SetDefault("pipeline.admet.max_h_donors", d.Pipeline.Admet.MaxHDonors)
	v.SetDefault("pipeline.depiction_size", d.Pipeline.DepictionSize)
	v.SetDefault("pipeline.skip_depictions", false)
	v.SetDefault("pipeline.max_records", d.Pipeline.MaxRecords)

	v.SetDefault("artifacts.backend", d.Artifacts.Backend)
	v.SetDefault("artifacts.ttl", d.Artifacts.TTL)
	v.SetDefault("artifacts.cleanup_interval", d.Artifacts.CleanupInterval)

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", d.Redis.KeyPrefix)

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", d.MinIO.Endpoint)
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", d.MinIO.Bucket)
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", d.Kafka.Brokers)
	v.SetDefault("kafka.topic", d.Kafka.Topic)
	v.SetDefault("kafka.group_id", d.Kafka.GroupID)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("metrics.enable_go_metrics", true)
	v.SetDefault("metrics.enable_process_metrics", true)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

//Personal.AI order the ending
