package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"douyinsight/adapters/llm"
	"douyinsight/ai"
	"douyinsight/domain/record"
	"douyinsight/internal/config"
	apperrors "douyinsight/internal/errors"
)

type fakeVideoRepo struct {
	videos []record.Video
}

func (f *fakeVideoRepo) Upsert(_ context.Context, v *record.Video) error {
	f.videos = append(f.videos, *v)
	return nil
}

func (f *fakeVideoRepo) GetByAwemeID(_ context.Context, id string) (*record.Video, error) {
	for _, v := range f.videos {
		if v.AwemeID == id {
			v := v
			return &v, nil
		}
	}
	return nil, apperrors.NotFound("video")
}

func (f *fakeVideoRepo) List(_ context.Context) ([]record.Video, error) {
	return f.videos, nil
}

func (f *fakeVideoRepo) Clear(_ context.Context) (int64, error) {
	n := int64(len(f.videos))
	f.videos = nil
	return n, nil
}

type fakeCommentRepo struct {
	comments []record.Comment
}

func (f *fakeCommentRepo) Insert(_ context.Context, c *record.Comment) error {
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeCommentRepo) List(_ context.Context) ([]record.Comment, error) {
	return f.comments, nil
}

func (f *fakeCommentRepo) ListByVideo(_ context.Context, awemeID string) ([]record.Comment, error) {
	var out []record.Comment
	for _, c := range f.comments {
		if c.AwemeID == awemeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) Clear(_ context.Context) (int64, error) {
	n := int64(len(f.comments))
	f.comments = nil
	return n, nil
}

func testApp(videos *fakeVideoRepo, comments *fakeCommentRepo, client *llm.MockLLMClient) *App {
	cfg := &config.Config{
		AI:      config.AIConfig{Model: "test-model", MaxTokens: 256},
		Predict: config.PredictConfig{MinRecords: 10, TestRatio: 0.2, Seed: 42},
	}
	var analyzer *ai.Analyzer
	if client != nil {
		analyzer = ai.NewAnalyzer(client, videos, cfg.AI)
	} else {
		analyzer = ai.NewAnalyzer(nil, videos, cfg.AI)
	}
	return NewApp(videos, comments, analyzer, cfg)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, app *App, method, path, body string) envelope {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func sampleVideos() []record.Video {
	ts := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return []record.Video{
		{AwemeID: "007", UserName: "a", FansCount: 120, LikeCount: 300, CollectCount: 30, PublishTime: &ts, Description: strings.Repeat("长", 120)},
		{AwemeID: "008", UserName: "b", FansCount: 99, LikeCount: 100, CollectCount: 10},
	}
}

func TestHandleGeneralStats(t *testing.T) {
	app := testApp(&fakeVideoRepo{videos: sampleVideos()}, &fakeCommentRepo{comments: []record.Comment{
		{AwemeID: "007", Content: "好看", UserIP: "广东"},
	}}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/stats/general", "")
	require.True(t, env.Success)

	var data struct {
		TotalVideos   int `json:"total_videos"`
		TotalComments int `json:"total_comments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.TotalVideos)
	assert.Equal(t, 1, data.TotalComments)
}

func TestHandleFansDistributionAlwaysFiveBuckets(t *testing.T) {
	app := testApp(&fakeVideoRepo{}, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/stats/fans-distribution", "")
	require.True(t, env.Success)

	var buckets []struct {
		Range string `json:"range"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &buckets))
	assert.Len(t, buckets, 5)
}

func TestHandleListVideosTruncatesDescription(t *testing.T) {
	app := testApp(&fakeVideoRepo{videos: sampleVideos()}, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/videos?limit=1", "")
	require.True(t, env.Success)

	var data struct {
		Videos []videoView `json:"videos"`
		Total  int         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Total)
	require.Len(t, data.Videos, 1)

	desc := []rune(data.Videos[0].Description)
	assert.Len(t, desc, 103, "100 runes plus ellipsis")
	assert.True(t, strings.HasSuffix(data.Videos[0].Description, "..."))
	assert.Equal(t, "007", data.Videos[0].AwemeID)
}

func TestHandleListCommentsFilterAndPaging(t *testing.T) {
	comments := &fakeCommentRepo{}
	for i := 0; i < 25; i++ {
		comments.comments = append(comments.comments, record.Comment{AwemeID: "007", Content: "x"})
	}
	comments.comments = append(comments.comments, record.Comment{AwemeID: "008", Content: "y"})

	app := testApp(&fakeVideoRepo{}, comments, nil)

	env := doRequest(t, app, http.MethodGet, "/api/comments?video_id=007&page=2&limit=20", "")
	require.True(t, env.Success)

	var data struct {
		Comments []commentView `json:"comments"`
		Total    int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 25, data.Total)
	assert.Len(t, data.Comments, 5)
}

func TestHandleSentiment(t *testing.T) {
	app := testApp(&fakeVideoRepo{}, &fakeCommentRepo{comments: []record.Comment{
		{AwemeID: "007", Content: "太棒了好看"},
		{AwemeID: "007", Content: "垃圾失望"},
	}}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/sentiment", "")
	require.True(t, env.Success)

	var data struct {
		Total    int `json:"total"`
		Positive int `json:"positive"`
		Negative int `json:"negative"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, 1, data.Positive)
	assert.Equal(t, 1, data.Negative)
}

func TestHandleKeywordsUnknownVideo(t *testing.T) {
	app := testApp(&fakeVideoRepo{}, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/keywords?video_id=missing", "")
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestHandlePredictLikesInsufficientData(t *testing.T) {
	app := testApp(&fakeVideoRepo{videos: sampleVideos()}, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodPost, "/api/predict/likes", `{"video_id":"007"}`)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestHandleAIAnalyzeUnconfigured(t *testing.T) {
	app := testApp(&fakeVideoRepo{videos: sampleVideos()}, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodPost, "/api/ai/analyze", `{"video_id":"007"}`)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "not configured")
}

func TestHandleAIAnalyze(t *testing.T) {
	client := &llm.MockLLMClient{Response: "## 分析\n视频表现良好。"}
	app := testApp(&fakeVideoRepo{videos: sampleVideos()}, &fakeCommentRepo{}, client)

	env := doRequest(t, app, http.MethodPost, "/api/ai/analyze", `{"video_id":"007"}`)
	require.True(t, env.Success)

	var data struct {
		VideoID string `json:"video_id"`
		HTML    string `json:"html"`
		Metrics struct {
			ViewCount int64 `json:"view_count"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "007", data.VideoID)
	assert.Contains(t, data.HTML, "<h2")
	assert.Equal(t, int64(3000), data.Metrics.ViewCount)
}

func TestHandleAIChatWithContext(t *testing.T) {
	client := &llm.MockLLMClient{Response: "建议优化标题"}
	app := testApp(&fakeVideoRepo{videos: sampleVideos()}, &fakeCommentRepo{}, client)

	env := doRequest(t, app, http.MethodPost, "/api/ai/chat", `{"message":"怎么提升互动","video_id":"007"}`)
	require.True(t, env.Success)

	require.Len(t, client.Prompts, 1)
	assert.Contains(t, client.Prompts[0], "007", "prompt carries the video context")
	assert.Contains(t, client.Prompts[0], "怎么提升互动")
}

func TestHandleTopUsersHonorsLimit(t *testing.T) {
	videos := &fakeVideoRepo{}
	for i := 0; i < 15; i++ {
		videos.videos = append(videos.videos, record.Video{
			AwemeID:   string(rune('a' + i)),
			UserName:  strings.Repeat("u", i+1),
			FansCount: int64(i * 10),
		})
	}
	app := testApp(videos, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/stats/top-users?limit=12", "")
	require.True(t, env.Success)
	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 12)

	env = doRequest(t, app, http.MethodGet, "/api/stats/top-users", "")
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 10, "default cutoff without a limit parameter")
}

func TestHandleClearData(t *testing.T) {
	videos := &fakeVideoRepo{videos: sampleVideos()}
	comments := &fakeCommentRepo{comments: []record.Comment{
		{AwemeID: "007", Content: "好看"},
		{AwemeID: "008", Content: "一般"},
		{AwemeID: "008", Content: "不错"},
	}}
	app := testApp(videos, comments, nil)

	env := doRequest(t, app, http.MethodPost, "/api/clear-data", "")
	require.True(t, env.Success)

	var counts map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, int64(2), counts["videos_deleted"])
	assert.Equal(t, int64(3), counts["comments_deleted"])
	assert.Empty(t, videos.videos)
	assert.Empty(t, comments.comments)
}

func TestHandleReportEmptyStore(t *testing.T) {
	app := testApp(&fakeVideoRepo{}, &fakeCommentRepo{}, nil)

	env := doRequest(t, app, http.MethodGet, "/api/report", "")
	require.True(t, env.Success)

	var rep map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &rep))
	for _, key := range []string{
		"general_statistics", "user_ip_distribution", "like_collect_relation",
		"fans_distribution", "top_users", "top_videos", "video_statistics",
		"publish_time_distribution",
	} {
		assert.Contains(t, rep, key)
	}
}
