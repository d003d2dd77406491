package minio

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

var (
	ErrObjectNotFound = errors.New(errors.CodeNotFound, "object not found")
	ErrInvalidRequest = errors.New(errors.CodeValidation, "invalid request")
)

// ObjectInfo describes a stored artifact.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// ArtifactRepository writes and lists run artifacts in the client's bucket.
type ArtifactRepository struct {
	client *Client
	logger logging.Logger
}

func NewArtifactRepository(client *Client, log logging.Logger) *ArtifactRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ArtifactRepository{client: client, logger: log}
}

// Put uploads data under key and returns its location as bucket/key.
func (r *ArtifactRepository) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", ErrInvalidRequest.WithDetail("object key is empty")
	}
	info, err := r.client.api.PutObject(ctx, r.client.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "upload failed")
	}
	r.logger.Debug("Artifact uploaded", logging.String("key", key), logging.Int64("size", info.Size))
	return r.client.cfg.Bucket + "/" + key, nil
}

func (r *ArtifactRepository) Stat(ctx context.Context, key string) (*ObjectInfo, error) {
	info, err := r.client.api.StatObject(ctx, r.client.cfg.Bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound.WithDetail(key)
		}
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "stat failed")
	}
	return toObjectInfo(info), nil
}

// List returns the objects under prefix, recursively.
func (r *ArtifactRepository) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for obj := range r.client.api.ListObjects(ctx, r.client.cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeExternalService, "list failed")
		}
		out = append(out, *toObjectInfo(obj))
	}
	return out, nil
}

// DeletePrefix removes every object under prefix and returns how many were
// removed.
func (r *ArtifactRepository) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if !strings.HasSuffix(prefix, "/") {
		return 0, ErrInvalidRequest.WithDetail("prefix must end with /")
	}
	objs, err := r.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	for i, o := range objs {
		if err := r.client.api.RemoveObject(ctx, r.client.cfg.Bucket, o.Key, minio.RemoveObjectOptions{}); err != nil {
			return i, errors.Wrap(err, errors.ErrCodeExternalService, "delete failed")
		}
	}
	return len(objs), nil
}

// PresignedURL returns a time-limited download link for key.
func (r *ArtifactRepository) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := r.client.api.PresignedGetObject(ctx, r.client.cfg.Bucket, key, r.client.cfg.PresignExpiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "presign failed")
	}
	return u.String(), nil
}

func toObjectInfo(info minio.ObjectInfo) *ObjectInfo {
	return &ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}
}

//Personal.AI order the ending
