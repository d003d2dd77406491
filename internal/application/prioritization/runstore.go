package prioritization

import (
	"context"
	"encoding/json"
	"time"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/admet-prioritizer/pkg/errors"
	"github.com/turtacn/admet-prioritizer/pkg/types/common"
)

// BlobCache is a TTL key/value store of opaque bytes.  Get reports a miss
// with an error for which errors.IsNotFound holds.
type BlobCache interface {
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context) (int, error)
}

// RunStore keeps finished reports for download until their TTL elapses.
type RunStore interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id common.ID) (*Report, error)
	Delete(ctx context.Context, id common.ID) error
	Count(ctx context.Context) (int, error)
}

type cachedRunStore struct {
	cache  BlobCache
	ttl    time.Duration
	logger logging.Logger
}

// NewRunStore stores JSON-encoded reports in cache.
func NewRunStore(cache BlobCache, ttl time.Duration, logger logging.Logger) RunStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &cachedRunStore{cache: cache, ttl: ttl, logger: logger}
}

func runKey(id common.ID) string { return "run:" + string(id) }

func (s *cachedRunStore) Save(ctx context.Context, r *Report) error {
	if r == nil || r.RunID == "" {
		return errors.InvalidParam("report must carry a run id")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode report")
	}
	if err := s.cache.Set(ctx, runKey(r.RunID), data, s.ttl); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to store report")
	}
	s.logger.Debug("run stored", logging.String("run_id", string(r.RunID)), logging.Int("bytes", len(data)))
	return nil
}

func (s *cachedRunStore) Get(ctx context.Context, id common.ID) (*Report, error) {
	data, err := s.cache.Get(ctx, runKey(id))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Newf(errors.ErrCodeRunNotFound, "run %s not found or expired", id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to load report")
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode report")
	}
	return &r, nil
}

func (s *cachedRunStore) Delete(ctx context.Context, id common.ID) error {
	return s.cache.Delete(ctx, runKey(id))
}

func (s *cachedRunStore) Count(ctx context.Context) (int, error) {
	return s.cache.Count(ctx)
}

//Personal.AI order the ending
