package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVideosChineseHeaders(t *testing.T) {
	table := Table{
		Headers: []string{"用户名", "粉丝数量", "视频描述", "发布时间", "视频时长", "点赞数", "收藏数", "评论数", "分享数", "视频ID"},
		Rows: []map[string]string{
			{
				"用户名": "美食家老王", "粉丝数量": "12000", "视频描述": "今天做红烧肉",
				"发布时间": "2024-05-01 18:30:00", "视频时长": "02:15",
				"点赞数": "3400", "收藏数": "120", "评论数": "89", "分享数": "45",
				"视频ID": "007123",
			},
		},
	}

	videos := NormalizeVideos(table)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "007123", v.AwemeID, "identifier must keep leading zeros")
	assert.Equal(t, "美食家老王", v.UserName)
	assert.Equal(t, int64(12000), v.FansCount)
	assert.Equal(t, int64(135), v.DurationSeconds)
	assert.Equal(t, int64(3400), v.LikeCount)
	require.NotNil(t, v.PublishTime)
	assert.Equal(t, 18, v.PublishTime.Hour())
}

func TestNormalizeVideosCanonicalHeaders(t *testing.T) {
	table := Table{
		Headers: []string{"aweme_id", "user_name", "like_count"},
		Rows: []map[string]string{
			{"aweme_id": "42", "user_name": "a", "like_count": "7"},
		},
	}

	videos := NormalizeVideos(table)
	require.Len(t, videos, 1)
	assert.Equal(t, "42", videos[0].AwemeID)
	assert.Equal(t, int64(7), videos[0].LikeCount)
	// Absent columns fall back to typed defaults.
	assert.Equal(t, int64(0), videos[0].FansCount)
	assert.Nil(t, videos[0].PublishTime)
}

func TestNormalizeVideosMalformedCells(t *testing.T) {
	table := Table{
		Headers: []string{"aweme_id", "fans_count", "视频时长", "发布时间"},
		Rows: []map[string]string{
			{"aweme_id": "1", "fans_count": "not-a-number", "视频时长": "1:2:3:4", "发布时间": "someday"},
		},
	}

	videos := NormalizeVideos(table)
	require.Len(t, videos, 1)
	assert.Equal(t, int64(0), videos[0].FansCount)
	assert.Equal(t, int64(0), videos[0].DurationSeconds)
	assert.Nil(t, videos[0].PublishTime)
}

func TestNormalizeComments(t *testing.T) {
	table := Table{
		Headers: []string{"用户id", "用户名", "评论内容", "评论时间", "IP地址", "点赞数", "视频id"},
		Rows: []map[string]string{
			{
				"用户id": "u1", "用户名": "小李", "评论内容": "太好看了",
				"评论时间": "2024-05-02 09:00:00", "IP地址": "广东", "点赞数": "12",
				"视频id": "007123",
			},
			{
				"用户id": "u2", "用户名": "小张", "评论内容": "",
				"评论时间": "bad", "IP地址": "", "点赞数": "-3",
				"视频id": "999",
			},
		},
	}

	comments := NormalizeComments(table)
	require.Len(t, comments, 2)

	assert.Equal(t, "广东", comments[0].UserIP)
	assert.Equal(t, int64(12), comments[0].LikeCount)
	assert.Equal(t, "007123", comments[0].AwemeID)

	assert.Nil(t, comments[1].CommentTime)
	assert.Equal(t, int64(0), comments[1].LikeCount)
}

func TestNormalizeEmptyTable(t *testing.T) {
	assert.Empty(t, NormalizeVideos(Table{}))
	assert.Empty(t, NormalizeComments(Table{}))
}
