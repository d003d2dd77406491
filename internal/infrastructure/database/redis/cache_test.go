package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

type CacheTestSuite struct {
	suite.Suite
	client *Client
	cache  *Cache
	ctx    context.Context
	mr     *miniredis.Miniredis
}

func (s *CacheTestSuite) SetupTest() {
	client, mr := newTestClient(s.T())
	s.client = client
	s.mr = mr
	s.cache = NewCache(client, nil, WithPrefix("test:"), WithDefaultTTL(time.Minute))
	s.ctx = context.Background()
}

func (s *CacheTestSuite) TestSetGet() {
	s.Require().NoError(s.cache.Set(s.ctx, "run:1", []byte(`{"a":1}`), 0))
	s.True(s.mr.Exists("test:run:1"))

	got, err := s.cache.Get(s.ctx, "run:1")
	s.Require().NoError(err)
	s.Equal(`{"a":1}`, string(got))
}

func (s *CacheTestSuite) TestGet_Miss() {
	_, err := s.cache.Get(s.ctx, "absent")
	s.Equal(ErrCacheMiss, err)
	s.True(errors.IsNotFound(err))
}

func (s *CacheTestSuite) TestDefaultTTLApplied() {
	s.Require().NoError(s.cache.Set(s.ctx, "k", []byte("v"), 0))
	ttl, err := s.cache.TTL(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(time.Minute, ttl)

	s.mr.FastForward(2 * time.Minute)
	_, err = s.cache.Get(s.ctx, "k")
	s.Equal(ErrCacheMiss, err)
}

func (s *CacheTestSuite) TestDeleteAndCount() {
	for _, k := range []string{"a", "b", "c"} {
		s.Require().NoError(s.cache.Set(s.ctx, k, []byte(k), time.Hour))
	}
	s.Require().NoError(s.client.Set(s.ctx, "other:x", "y", 0).Err())

	n, err := s.cache.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, n)

	s.Require().NoError(s.cache.Delete(s.ctx, "b"))
	n, err = s.cache.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *CacheTestSuite) TestClosedClient() {
	s.Require().NoError(s.client.Close())

	err := s.cache.Set(s.ctx, "k", []byte("v"), 0)
	s.True(errors.IsCode(err, errors.ErrCodeCacheError))
	s.Error(s.cache.Ping(s.ctx))
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

//Personal.AI order the ending
