package minio

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/turtacn/admet-prioritizer/internal/config"
	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// RunsPrefix is the key prefix under which run artifacts are written.
const RunsPrefix = "runs/"

// runExpiryDays bounds how long published artifacts stay in the bucket.
const runExpiryDays = 7

// API is the subset of *minio.Client used here.
type API interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// Client holds the bucket that receives run artifacts.
type Client struct {
	api    API
	cfg    config.MinIOConfig
	logger logging.Logger
}

// NewClient connects, creates the bucket when missing and installs the
// expiry rule for run artifacts.
func NewClient(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (*Client, error) {
	applyDefaults(&cfg)
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to create minio client")
	}

	c := NewClientWithAPI(api, cfg, log)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	c.setupLifecycle(ctx)

	c.logger.Info("MinIO client connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL))
	return c, nil
}

// NewClientWithAPI wraps api without touching the server.
func NewClientWithAPI(api API, cfg config.MinIOConfig, log logging.Logger) *Client {
	applyDefaults(&cfg)
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{api: api, cfg: cfg, logger: log}
}

func applyDefaults(cfg *config.MinIOConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultMinIOEndpoint
	}
	if cfg.Bucket == "" {
		cfg.Bucket = config.DefaultMinIOBucket
	}
	if cfg.Region == "" {
		cfg.Region = config.DefaultMinIORegion
	}
	if cfg.PresignExpiry == 0 {
		cfg.PresignExpiry = config.DefaultMinIOPresignExpiry
	}
}

func (c *Client) Bucket() string { return c.cfg.Bucket }

func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to check bucket existence")
	}
	if exists {
		return nil
	}
	if err := c.api.MakeBucket(ctx, c.cfg.Bucket, minio.MakeBucketOptions{Region: c.cfg.Region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to create bucket "+c.cfg.Bucket)
	}
	c.logger.Info("Created bucket", logging.String("bucket", c.cfg.Bucket))
	return nil
}

func (c *Client) setupLifecycle(ctx context.Context) {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{{
		ID:         "runs-cleanup",
		Status:     "Enabled",
		RuleFilter: lifecycle.Filter{Prefix: RunsPrefix},
		Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(runExpiryDays)},
	}}
	if err := c.api.SetBucketLifecycle(ctx, c.cfg.Bucket, lc); err != nil {
		c.logger.Warn("Failed to set lifecycle for runs prefix", logging.Err(err))
	}
}

// HealthCheck reports whether the bucket is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "minio unreachable")
	}
	if !exists {
		return errors.Newf(errors.CodeUnavailable, "bucket %s missing", c.cfg.Bucket)
	}
	return nil
}

//Personal.AI order the ending
