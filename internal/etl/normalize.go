// Package etl implements the ingestion pipeline: tabular readers, schema
// normalization onto the canonical record types, and the repository import.
//
// Two source schemas are known, video rows and comment rows, both scraped
// with mixed-language column headers. Normalization resolves each canonical
// field against a static table of accepted source names once per input
// table; unknown columns are dropped and missing ones fall back to typed
// defaults.
package etl

import (
	"douyinsight/domain/record"
)

// Table is one raw tabular input: a header row plus data rows keyed by
// header name, the shape both the CSV and XLSX readers produce.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Accepted source names per canonical field. First match in header order
// wins; the scraper's native headers are listed before the canonical names
// so re-importing already-normalized exports also works.
var videoColumns = map[string][]string{
	"user_name":     {"用户名", "user_name"},
	"fans_count":    {"粉丝数量", "fans_count"},
	"description":   {"视频描述", "description"},
	"publish_time":  {"发布时间", "publish_time"},
	"duration":      {"视频时长", "duration"},
	"like_count":    {"点赞数", "like_count"},
	"collect_count": {"收藏数", "collect_count"},
	"comment_count": {"评论数", "comment_count"},
	"share_count":   {"分享数", "share_count"},
	"aweme_id":      {"视频ID", "aweme_id"},
}

var commentColumns = map[string][]string{
	"user_id":      {"用户id", "user_id"},
	"user_name":    {"用户名", "user_name"},
	"content":      {"评论内容", "content"},
	"comment_time": {"评论时间", "comment_time"},
	"user_ip":      {"IP地址", "user_ip"},
	"like_count":   {"点赞数", "like_count"},
	"aweme_id":     {"视频id", "aweme_id"},
}

// resolveColumns maps each canonical field to the actual header present in
// the table, resolved once so per-row lookup is a plain map access.
func resolveColumns(headers []string, accepted map[string][]string) map[string]string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	resolved := make(map[string]string, len(accepted))
	for canonical, names := range accepted {
		for _, name := range names {
			if present[name] {
				resolved[canonical] = name
				break
			}
		}
	}
	return resolved
}

// field returns the raw cell for a canonical field, or "" when the column
// is absent from the source schema.
func field(row map[string]string, resolved map[string]string, canonical string) string {
	col, ok := resolved[canonical]
	if !ok {
		return ""
	}
	return row[col]
}

// NormalizeVideos maps raw video rows onto canonical records. Identifier
// fields stay strings regardless of apparent numeric content; counters are
// coerced with ParseCount and zero-filled.
func NormalizeVideos(t Table) []record.Video {
	resolved := resolveColumns(t.Headers, videoColumns)

	videos := make([]record.Video, 0, len(t.Rows))
	for _, row := range t.Rows {
		videos = append(videos, record.Video{
			AwemeID:         field(row, resolved, "aweme_id"),
			UserName:        field(row, resolved, "user_name"),
			FansCount:       ParseCount(field(row, resolved, "fans_count")),
			Description:     field(row, resolved, "description"),
			PublishTime:     ParseTimestamp(field(row, resolved, "publish_time")),
			DurationSeconds: ParseDuration(field(row, resolved, "duration")),
			LikeCount:       ParseCount(field(row, resolved, "like_count")),
			CommentCount:    ParseCount(field(row, resolved, "comment_count")),
			ShareCount:      ParseCount(field(row, resolved, "share_count")),
			CollectCount:    ParseCount(field(row, resolved, "collect_count")),
		})
	}
	return videos
}

// NormalizeComments maps raw comment rows onto canonical records. The
// aweme_id foreign key is not enforced: orphan comments are legal.
func NormalizeComments(t Table) []record.Comment {
	resolved := resolveColumns(t.Headers, commentColumns)

	comments := make([]record.Comment, 0, len(t.Rows))
	for _, row := range t.Rows {
		comments = append(comments, record.Comment{
			UserID:      field(row, resolved, "user_id"),
			UserName:    field(row, resolved, "user_name"),
			Content:     field(row, resolved, "content"),
			CommentTime: ParseTimestamp(field(row, resolved, "comment_time")),
			UserIP:      field(row, resolved, "user_ip"),
			LikeCount:   ParseCount(field(row, resolved, "like_count")),
			AwemeID:     field(row, resolved, "aweme_id"),
		})
	}
	return comments
}
