// Package record holds the canonical record types produced by schema
// normalization. Field names are independent of the source column naming;
// all counters are non-negative and zero-filled, identifier fields are
// opaque strings.
package record

import "time"

// Video is one scraped video after normalization.
//
// PublishTime is nil when the source value could not be parsed; time-based
// aggregations exclude such records rather than treating them as epoch zero.
type Video struct {
	AwemeID         string     `db:"aweme_id" json:"aweme_id"`
	UserName        string     `db:"user_name" json:"user_name"`
	FansCount       int64      `db:"fans_count" json:"fans_count"`
	Description     string     `db:"description" json:"description"`
	PublishTime     *time.Time `db:"publish_time" json:"publish_time,omitempty"`
	DurationSeconds int64      `db:"duration_seconds" json:"duration_seconds"`
	LikeCount       int64      `db:"like_count" json:"like_count"`
	CommentCount    int64      `db:"comment_count" json:"comment_count"`
	ShareCount      int64      `db:"share_count" json:"share_count"`
	CollectCount    int64      `db:"collect_count" json:"collect_count"`
}

// Comment is one scraped comment after normalization.
//
// AwemeID references a Video but the link is not enforced; orphan comments
// are legal. UserIP is frequently a region label rather than a literal IP.
type Comment struct {
	UserID      string     `db:"user_id" json:"user_id"`
	UserName    string     `db:"user_name" json:"user_name"`
	Content     string     `db:"content" json:"content"`
	CommentTime *time.Time `db:"comment_time" json:"comment_time,omitempty"`
	UserIP      string     `db:"user_ip" json:"user_ip"`
	LikeCount   int64      `db:"like_count" json:"like_count"`
	AwemeID     string     `db:"aweme_id" json:"aweme_id"`
}

// TotalInteractions sums the four engagement counters.
func (v Video) TotalInteractions() int64 {
	return v.LikeCount + v.CommentCount + v.ShareCount + v.CollectCount
}
