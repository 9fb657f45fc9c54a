// Package report defines the value objects returned by the aggregation
// engine. An AggregateReport is purely derived: it is recomputed from one
// consistent snapshot of the record set on every request and never persisted.
package report

// GeneralStats holds the headline totals.
type GeneralStats struct {
	TotalVideos   int `json:"total_videos"`
	TotalComments int `json:"total_comments"`
}

// RegionCount is one entry of the IP/region distribution, ordered by
// frequency with ties broken by first appearance in the source sequence.
type RegionCount struct {
	Region string `json:"user_ip"`
	Count  int    `json:"count"`
}

// LikeCollectEntry annotates a top-liked video with its collect/like ratio,
// rounded to 4 decimal places. Ratio is 0 when LikeCount is 0.
type LikeCollectEntry struct {
	Description  string  `json:"description"`
	LikeCount    int64   `json:"like_count"`
	CollectCount int64   `json:"collect_count"`
	Ratio        float64 `json:"ratio"`
}

// BucketCount is one bar of the fans-count histogram. All five buckets are
// always present, zero counts included.
type BucketCount struct {
	Bucket string `json:"range"`
	Count  int    `json:"count"`
}

// TopUser is one row of the fans ranking (videos deduplicated by user).
type TopUser struct {
	UserName  string `json:"user_name"`
	FansCount int64  `json:"fans_count"`
}

// TopVideo is one row of the like ranking.
type TopVideo struct {
	AwemeID      string `json:"aweme_id"`
	UserName     string `json:"user_name"`
	Description  string `json:"description"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	ShareCount   int64  `json:"share_count"`
	CollectCount int64  `json:"collect_count"`
}

// MetricStats holds descriptive statistics for one engagement counter,
// computed over the full record set.
type MetricStats struct {
	Total  int64   `json:"total"`
	Mean   float64 `json:"mean"`
	Max    int64   `json:"max"`
	Min    int64   `json:"min"`
	Median float64 `json:"median"`
}

// AggregateReport composes every named aggregation, keyed the way the
// dashboard and JSON API consume them.
type AggregateReport struct {
	GeneralStatistics       GeneralStats           `json:"general_statistics"`
	UserIPDistribution      []RegionCount          `json:"user_ip_distribution"`
	LikeCollectRelation     []LikeCollectEntry     `json:"like_collect_relation"`
	FansDistribution        []BucketCount          `json:"fans_distribution"`
	TopUsers                []TopUser              `json:"top_users"`
	TopVideos               []TopVideo             `json:"top_videos"`
	VideoStatistics         map[string]MetricStats `json:"video_statistics"`
	PublishTimeDistribution map[string]int         `json:"publish_time_distribution"`
}
