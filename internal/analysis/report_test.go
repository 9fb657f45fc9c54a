package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"douyinsight/domain/record"
)

type stubVideoRepo struct {
	videos []record.Video
	err    error
}

func (s *stubVideoRepo) Upsert(context.Context, *record.Video) error { return nil }
func (s *stubVideoRepo) GetByAwemeID(context.Context, string) (*record.Video, error) {
	return nil, errors.New("not implemented")
}
func (s *stubVideoRepo) List(context.Context) ([]record.Video, error) { return s.videos, s.err }
func (s *stubVideoRepo) Clear(context.Context) (int64, error)         { return 0, nil }

type stubCommentRepo struct {
	comments []record.Comment
	err      error
}

func (s *stubCommentRepo) Insert(context.Context, *record.Comment) error { return nil }
func (s *stubCommentRepo) List(context.Context) ([]record.Comment, error) {
	return s.comments, s.err
}
func (s *stubCommentRepo) ListByVideo(context.Context, string) ([]record.Comment, error) {
	return s.comments, s.err
}
func (s *stubCommentRepo) Clear(context.Context) (int64, error) { return 0, nil }

func TestBuildReport(t *testing.T) {
	videos := &stubVideoRepo{videos: []record.Video{
		{AwemeID: "1", UserName: "a", FansCount: 150, LikeCount: 10, CollectCount: 2},
		{AwemeID: "2", UserName: "b", FansCount: 50, LikeCount: 30, CollectCount: 3},
	}}
	comments := &stubCommentRepo{comments: []record.Comment{
		{UserIP: "广东", Content: "x", AwemeID: "1"},
		{UserIP: "广东", Content: "y", AwemeID: "2"},
		{UserIP: "北京", Content: "z", AwemeID: "2"},
	}}

	rep := NewAssembler(videos, comments).BuildReport(context.Background())

	assert.Equal(t, 2, rep.GeneralStatistics.TotalVideos)
	assert.Equal(t, 3, rep.GeneralStatistics.TotalComments)

	require.NotEmpty(t, rep.UserIPDistribution)
	assert.Equal(t, "广东", rep.UserIPDistribution[0].Region)
	assert.Equal(t, 2, rep.UserIPDistribution[0].Count)

	require.Len(t, rep.LikeCollectRelation, 2)
	assert.Equal(t, int64(30), rep.LikeCollectRelation[0].LikeCount)

	assert.Len(t, rep.FansDistribution, 5)
	assert.Len(t, rep.TopUsers, 2)
	assert.Len(t, rep.TopVideos, 2)
	assert.Contains(t, rep.VideoStatistics, "like_count")
}

func TestBuildReportEmptyStore(t *testing.T) {
	rep := NewAssembler(&stubVideoRepo{}, &stubCommentRepo{}).BuildReport(context.Background())

	assert.Equal(t, 0, rep.GeneralStatistics.TotalVideos)
	assert.NotNil(t, rep.UserIPDistribution)
	assert.Empty(t, rep.UserIPDistribution)
	assert.Len(t, rep.FansDistribution, 5)
	assert.NotNil(t, rep.VideoStatistics)
	assert.Empty(t, rep.VideoStatistics)
	assert.NotNil(t, rep.PublishTimeDistribution)
}

func TestBuildReportSurvivesRepositoryFailure(t *testing.T) {
	videos := &stubVideoRepo{videos: []record.Video{{AwemeID: "1", LikeCount: 5}}}
	comments := &stubCommentRepo{err: errors.New("connection reset")}

	rep := NewAssembler(videos, comments).BuildReport(context.Background())

	// Comment-backed sections degrade to empty, video sections still fill.
	assert.Empty(t, rep.UserIPDistribution)
	assert.Equal(t, 0, rep.GeneralStatistics.TotalComments)
	assert.Equal(t, 1, rep.GeneralStatistics.TotalVideos)
	require.Len(t, rep.LikeCollectRelation, 1)
}
