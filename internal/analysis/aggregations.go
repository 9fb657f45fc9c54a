// Package analysis computes the aggregate views served by the stats API:
// IP distribution, like/collect ranking, fans histogram, top users and
// videos, per-metric summary statistics and the publish-hour histogram.
// Every aggregation is a pure function over enriched records and returns
// an empty but well-formed shape for empty input.
package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"douyinsight/domain/record"
	"douyinsight/domain/report"
	"douyinsight/internal/metrics"
)

const topN = 10

// GeneralStatistics counts the loaded records.
func GeneralStatistics(videos []metrics.EnrichedVideo, comments []record.Comment) report.GeneralStats {
	return report.GeneralStats{
		TotalVideos:   len(videos),
		TotalComments: len(comments),
	}
}

// IPDistribution counts comments per commenter region and returns the top
// ten regions by count, descending. Regions tied on count keep the order
// of their first appearance in the input. Comments with an empty region
// are excluded.
func IPDistribution(comments []record.Comment) []report.RegionCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, c := range comments {
		if c.UserIP == "" {
			continue
		}
		if _, seen := counts[c.UserIP]; !seen {
			order = append(order, c.UserIP)
		}
		counts[c.UserIP]++
	}

	out := make([]report.RegionCount, 0, len(order))
	for _, region := range order {
		out = append(out, report.RegionCount{Region: region, Count: counts[region]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return truncateRegions(out, topN)
}

// LikeCollectRelation returns the top ten videos by like count with their
// collect counts and the collect-to-like ratio, rounded to four decimal
// places. A video with zero likes reports a ratio of 0.
func LikeCollectRelation(videos []metrics.EnrichedVideo) []report.LikeCollectEntry {
	ranked := make([]metrics.EnrichedVideo, len(videos))
	copy(ranked, videos)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].LikeCount > ranked[j].LikeCount })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	out := make([]report.LikeCollectEntry, 0, len(ranked))
	for _, v := range ranked {
		ratio := 0.0
		if v.LikeCount > 0 {
			ratio = roundTo(float64(v.CollectCount)/float64(v.LikeCount), 4)
		}
		out = append(out, report.LikeCollectEntry{
			Description:  v.Description,
			LikeCount:    v.LikeCount,
			CollectCount: v.CollectCount,
			Ratio:        ratio,
		})
	}
	return out
}

// FansDistribution buckets creators by fan count. The result always
// contains all five buckets in ascending range order, including buckets
// with a zero count.
func FansDistribution(videos []metrics.EnrichedVideo) []report.BucketCount {
	counts := make(map[string]int, len(metrics.BucketLabels))
	for _, v := range videos {
		counts[v.FansBucket]++
	}

	out := make([]report.BucketCount, len(metrics.BucketLabels))
	for i, label := range metrics.BucketLabels {
		out[i] = report.BucketCount{Bucket: label, Count: counts[label]}
	}
	return out
}

// TopUsersByFans deduplicates creators by username, keeping the first
// record per user, and returns the top n by fan count descending. Ties
// keep first-appearance order. A non-positive n falls back to 10.
func TopUsersByFans(videos []metrics.EnrichedVideo, n int) []report.TopUser {
	if n <= 0 {
		n = topN
	}
	seen := make(map[string]bool)
	users := make([]report.TopUser, 0)
	for _, v := range videos {
		if seen[v.UserName] {
			continue
		}
		seen[v.UserName] = true
		users = append(users, report.TopUser{UserName: v.UserName, FansCount: v.FansCount})
	}

	sort.SliceStable(users, func(i, j int) bool { return users[i].FansCount > users[j].FansCount })
	if len(users) > n {
		users = users[:n]
	}
	return users
}

// TopVideosByLikes returns the n most-liked videos with their full
// counter set. Ties keep source order. A non-positive n falls back to 10.
func TopVideosByLikes(videos []metrics.EnrichedVideo, n int) []report.TopVideo {
	if n <= 0 {
		n = topN
	}
	ranked := make([]metrics.EnrichedVideo, len(videos))
	copy(ranked, videos)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].LikeCount > ranked[j].LikeCount })
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]report.TopVideo, 0, len(ranked))
	for _, v := range ranked {
		out = append(out, report.TopVideo{
			AwemeID:      v.AwemeID,
			Description:  v.Description,
			UserName:     v.UserName,
			LikeCount:    v.LikeCount,
			CommentCount: v.CommentCount,
			ShareCount:   v.ShareCount,
			CollectCount: v.CollectCount,
		})
	}
	return out
}

// statColumns are the counters summarized by VideoStatistics, keyed by
// their report field name.
var statColumns = []struct {
	name    string
	extract func(metrics.EnrichedVideo) int64
}{
	{"comment_count", func(v metrics.EnrichedVideo) int64 { return v.CommentCount }},
	{"like_count", func(v metrics.EnrichedVideo) int64 { return v.LikeCount }},
	{"share_count", func(v metrics.EnrichedVideo) int64 { return v.ShareCount }},
	{"collect_count", func(v metrics.EnrichedVideo) int64 { return v.CollectCount }},
}

// VideoStatistics computes total, mean, max, min and median for each
// engagement counter. Empty input yields an empty map.
func VideoStatistics(videos []metrics.EnrichedVideo) map[string]report.MetricStats {
	out := make(map[string]report.MetricStats, len(statColumns))
	if len(videos) == 0 {
		return out
	}

	for _, col := range statColumns {
		data := make(stats.Float64Data, len(videos))
		var total int64
		for i, v := range videos {
			val := col.extract(v)
			data[i] = float64(val)
			total += val
		}

		mean, _ := stats.Mean(data)
		max, _ := stats.Max(data)
		min, _ := stats.Min(data)
		median, _ := stats.Median(data)

		out[col.name] = report.MetricStats{
			Total:  total,
			Mean:   roundTo(mean, 2),
			Max:    int64(max),
			Min:    int64(min),
			Median: median,
		}
	}
	return out
}

// PublishTimeDistribution counts videos per publish hour. Keys are the
// decimal hour ("0" through "23"); hours with no videos are omitted, and
// videos without a known publish time are excluded.
func PublishTimeDistribution(videos []metrics.EnrichedVideo) map[string]int {
	out := make(map[string]int)
	for _, v := range videos {
		if v.PublishHour < 0 {
			continue
		}
		out[strconv.Itoa(v.PublishHour)]++
	}
	return out
}

func truncateRegions(rs []report.RegionCount, n int) []report.RegionCount {
	if len(rs) > n {
		return rs[:n]
	}
	return rs
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
