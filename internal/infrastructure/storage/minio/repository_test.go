package minio

import (
	"context"
	stderrors "errors"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

type RepositoryTestSuite struct {
	suite.Suite
	api  *MockAPI
	repo *ArtifactRepository
	ctx  context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.api = &MockAPI{}
	s.repo = NewArtifactRepository(newTestClient(s.api), nil)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.api.AssertExpectations(s.T())
}

func objectChan(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func (s *RepositoryTestSuite) TestPut() {
	s.api.On("PutObject", mock.Anything, "runs-bucket", "runs/1/a.csv", "x,y\n", int64(4), "text/csv").
		Return(minio.UploadInfo{Key: "runs/1/a.csv", Size: 4}, nil)

	loc, err := s.repo.Put(s.ctx, "runs/1/a.csv", []byte("x,y\n"), "text/csv")
	s.Require().NoError(err)
	s.Equal("runs-bucket/runs/1/a.csv", loc)
}

func (s *RepositoryTestSuite) TestPut_EmptyKey() {
	_, err := s.repo.Put(s.ctx, "", nil, "")
	s.True(errors.IsValidation(err))
}

func (s *RepositoryTestSuite) TestPut_Failure() {
	s.api.On("PutObject", mock.Anything, "runs-bucket", "k", "", int64(0), "").
		Return(minio.UploadInfo{}, stderrors.New("denied"))

	_, err := s.repo.Put(s.ctx, "k", nil, "")
	s.True(errors.IsCode(err, errors.ErrCodeExternalService))
}

func (s *RepositoryTestSuite) TestStat_NotFound() {
	s.api.On("StatObject", mock.Anything, "runs-bucket", "missing").
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

	_, err := s.repo.Stat(s.ctx, "missing")
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestListAndDeletePrefix() {
	s.api.On("ListObjects", mock.Anything, "runs-bucket", "runs/1/").
		Return(objectChan(minio.ObjectInfo{Key: "runs/1/a.csv", Size: 3}, minio.ObjectInfo{Key: "runs/1/b.png", Size: 9}))
	s.api.On("RemoveObject", mock.Anything, "runs-bucket", "runs/1/a.csv").Return(nil)
	s.api.On("RemoveObject", mock.Anything, "runs-bucket", "runs/1/b.png").Return(nil)

	n, err := s.repo.DeletePrefix(s.ctx, "runs/1/")
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *RepositoryTestSuite) TestDeletePrefix_RequiresSlash() {
	_, err := s.repo.DeletePrefix(s.ctx, "runs/1")
	s.True(errors.IsValidation(err))
}

func (s *RepositoryTestSuite) TestList_Error() {
	s.api.On("ListObjects", mock.Anything, "runs-bucket", "runs/").
		Return(objectChan(minio.ObjectInfo{Err: stderrors.New("boom")}))

	_, err := s.repo.List(s.ctx, "runs/")
	s.Error(err)
}

func (s *RepositoryTestSuite) TestPresignedURL() {
	u, _ := url.Parse("http://minio/runs-bucket/runs/1/a.csv?sig=1")
	s.api.On("PresignedGetObject", mock.Anything, "runs-bucket", "runs/1/a.csv", mock.Anything).Return(u, nil)

	got, err := s.repo.PresignedURL(s.ctx, "runs/1/a.csv")
	s.Require().NoError(err)
	s.Equal(u.String(), got)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

//Personal.AI order the ending
