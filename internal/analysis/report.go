package analysis

import (
	"context"
	"fmt"

	"douyinsight/domain/record"
	"douyinsight/domain/report"
	"douyinsight/internal"
	"douyinsight/internal/metrics"
	"douyinsight/ports"
)

// Assembler loads records from the repositories and builds the combined
// aggregate report. A failing section degrades to its empty shape instead
// of failing the whole report.
type Assembler struct {
	videos   ports.VideoRepository
	comments ports.CommentRepository
	log      *internal.Logger
}

func NewAssembler(videos ports.VideoRepository, comments ports.CommentRepository) *Assembler {
	return &Assembler{
		videos:   videos,
		comments: comments,
		log:      internal.NewDefaultLogger("analysis"),
	}
}

// Snapshot loads the current dataset. Repository failures are logged and
// degrade to empty slices so downstream aggregations still produce their
// empty shapes.
func (a *Assembler) Snapshot(ctx context.Context) ([]metrics.EnrichedVideo, []record.Comment) {
	videos, err := a.videos.List(ctx)
	if err != nil {
		a.log.Warn("loading videos failed: %v", err)
		videos = nil
	}
	comments, err := a.comments.List(ctx)
	if err != nil {
		a.log.Warn("loading comments failed: %v", err)
		comments = nil
	}
	return metrics.Enrich(videos), comments
}

// BuildReport assembles every aggregation into a single report. Each
// section runs isolated: a panic inside one aggregation leaves that
// section at its empty value and the rest of the report intact.
func (a *Assembler) BuildReport(ctx context.Context) report.AggregateReport {
	videos, comments := a.Snapshot(ctx)

	rep := report.AggregateReport{
		UserIPDistribution:      []report.RegionCount{},
		LikeCollectRelation:     []report.LikeCollectEntry{},
		FansDistribution:        []report.BucketCount{},
		TopUsers:                []report.TopUser{},
		TopVideos:               []report.TopVideo{},
		VideoStatistics:         map[string]report.MetricStats{},
		PublishTimeDistribution: map[string]int{},
	}

	a.section("general_statistics", func() {
		rep.GeneralStatistics = GeneralStatistics(videos, comments)
	})
	a.section("user_ip_distribution", func() {
		rep.UserIPDistribution = IPDistribution(comments)
	})
	a.section("like_collect_relation", func() {
		rep.LikeCollectRelation = LikeCollectRelation(videos)
	})
	a.section("fans_distribution", func() {
		rep.FansDistribution = FansDistribution(videos)
	})
	a.section("top_users", func() {
		rep.TopUsers = TopUsersByFans(videos, topN)
	})
	a.section("top_videos", func() {
		rep.TopVideos = TopVideosByLikes(videos, topN)
	})
	a.section("video_statistics", func() {
		rep.VideoStatistics = VideoStatistics(videos)
	})
	a.section("publish_time_distribution", func() {
		rep.PublishTimeDistribution = PublishTimeDistribution(videos)
	})

	return rep
}

func (a *Assembler) section(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("aggregation %s failed: %v", name, fmt.Sprint(r))
		}
	}()
	fn()
}
