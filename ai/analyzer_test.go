package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"douyinsight/adapters/llm"
	"douyinsight/domain/record"
	"douyinsight/internal/config"
	apperrors "douyinsight/internal/errors"
)

type stubVideoRepo struct {
	video *record.Video
}

func (s *stubVideoRepo) Upsert(context.Context, *record.Video) error { return nil }
func (s *stubVideoRepo) GetByAwemeID(_ context.Context, id string) (*record.Video, error) {
	if s.video != nil && s.video.AwemeID == id {
		return s.video, nil
	}
	return nil, apperrors.NotFound("video")
}
func (s *stubVideoRepo) List(context.Context) ([]record.Video, error) { return nil, nil }
func (s *stubVideoRepo) Clear(context.Context) (int64, error)         { return 0, nil }

func testVideo() *record.Video {
	return &record.Video{
		AwemeID:      "007123",
		UserName:     "美食家老王",
		FansCount:    12000,
		Description:  "今天做红烧肉",
		LikeCount:    1000,
		CommentCount: 50,
		ShareCount:   20,
		CollectCount: 30,
	}
}

func newTestAnalyzer(client *llm.MockLLMClient, video *record.Video) *Analyzer {
	cfg := config.AIConfig{Model: "test-model", MaxTokens: 512}
	return NewAnalyzer(client, &stubVideoRepo{video: video}, cfg)
}

func TestAnalyzeVideoBuildsPrompt(t *testing.T) {
	client := &llm.MockLLMClient{Response: "# 分析\n表现不错"}
	analyzer := newTestAnalyzer(client, testVideo())

	result, err := analyzer.AnalyzeVideo(context.Background(), "007123")
	require.NoError(t, err)

	require.Len(t, client.Prompts, 1)
	prompt := client.Prompts[0]
	assert.Contains(t, prompt, "007123")
	assert.Contains(t, prompt, "美食家老王")
	assert.Contains(t, prompt, "红烧肉")

	assert.Equal(t, "007123", result.VideoID)
	assert.Contains(t, result.HTML, "<h1")

	// View count estimated as ten times the like count.
	assert.Equal(t, int64(10000), result.Metrics.ViewCount)
	// interaction = (1000+50+20+30)/10000 = 11%
	assert.Equal(t, 11.0, result.Metrics.InteractionRate)
	assert.Equal(t, 10.0, result.Metrics.LikeRate)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.234))
	assert.Equal(t, 1.24, round2(1.236))
	assert.Equal(t, 0.0, round2(0))
}

func TestAnalyzeVideoZeroLikes(t *testing.T) {
	video := testVideo()
	video.LikeCount = 0
	client := &llm.MockLLMClient{Response: "ok"}
	analyzer := newTestAnalyzer(client, video)

	result, err := analyzer.AnalyzeVideo(context.Background(), "007123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Metrics.ViewCount)
	// Divisor floored at 1, rates stay finite.
	assert.Equal(t, 5000.0, result.Metrics.CommentRate)
}

func TestAnalyzeVideoUnknownID(t *testing.T) {
	analyzer := newTestAnalyzer(&llm.MockLLMClient{}, testVideo())

	_, err := analyzer.AnalyzeVideo(context.Background(), "nope")
	assert.Error(t, err)
}

func TestAnalyzeVideoClientError(t *testing.T) {
	client := &llm.MockLLMClient{Error: errors.New("rate limited")}
	analyzer := newTestAnalyzer(client, testVideo())

	_, err := analyzer.AnalyzeVideo(context.Background(), "007123")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternalService, apperrors.GetCode(err))
}

func TestChatWithoutVideoContext(t *testing.T) {
	client := &llm.MockLLMClient{Response: "建议加强互动"}
	analyzer := newTestAnalyzer(client, nil)

	resp, err := analyzer.Chat(context.Background(), "怎么涨粉", "")
	require.NoError(t, err)
	assert.Equal(t, "建议加强互动", resp)
	require.Len(t, client.Prompts, 1)
	assert.Equal(t, "怎么涨粉", client.Prompts[0])
}

func TestChatUnknownVideoStillAnswers(t *testing.T) {
	client := &llm.MockLLMClient{Response: "ok"}
	analyzer := newTestAnalyzer(client, nil)

	_, err := analyzer.Chat(context.Background(), "你好", "missing")
	require.NoError(t, err)
	require.Len(t, client.Prompts, 1)
	assert.Equal(t, "你好", client.Prompts[0])
}

func TestChatEmptyMessage(t *testing.T) {
	analyzer := newTestAnalyzer(&llm.MockLLMClient{}, nil)

	_, err := analyzer.Chat(context.Background(), "  ", "")
	assert.Error(t, err)
}

func TestUnconfiguredAnalyzer(t *testing.T) {
	analyzer := NewAnalyzer(nil, &stubVideoRepo{}, config.AIConfig{})
	assert.False(t, analyzer.Configured())

	_, err := analyzer.AnalyzeVideo(context.Background(), "1")
	assert.Error(t, err)
	_, err = analyzer.Chat(context.Background(), "hi", "")
	assert.Error(t, err)
}
