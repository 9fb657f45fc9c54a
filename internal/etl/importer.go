package etl

import (
	"context"

	"douyinsight/domain/core"
	"douyinsight/internal"
	apperrors "douyinsight/internal/errors"
	"douyinsight/ports"

	"golang.org/x/sync/errgroup"
)

// Importer drives the ingestion gateway: it reads the two source tables,
// normalizes them and writes canonical records through the repositories.
// Videos are upserted by aweme_id (last-write-wins); comments are
// append-only inserts.
type Importer struct {
	videos   ports.VideoRepository
	comments ports.CommentRepository
	log      *internal.Logger
}

// ImportSummary reports what one ingestion run did.
type ImportSummary struct {
	BatchID  core.BatchID `json:"batch_id"`
	Videos   int          `json:"videos"`
	Comments int          `json:"comments"`
}

// NewImporter creates an importer over the given repositories.
func NewImporter(videos ports.VideoRepository, comments ports.CommentRepository) *Importer {
	return &Importer{
		videos:   videos,
		comments: comments,
		log:      internal.NewDefaultLogger("etl"),
	}
}

// ImportAll ingests both source files concurrently. The two imports are
// independent; concurrent runs against the same store resolve by
// last-write-wins on the video identifier.
func (im *Importer) ImportAll(ctx context.Context, videoPath, commentPath string) (*ImportSummary, error) {
	summary := &ImportSummary{BatchID: core.NewBatchID()}
	im.log.Info("starting import batch %s", summary.BatchID)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := im.ImportVideos(ctx, videoPath)
		summary.Videos = n
		return err
	})
	g.Go(func() error {
		n, err := im.ImportComments(ctx, commentPath)
		summary.Comments = n
		return err
	})
	if err := g.Wait(); err != nil {
		return summary, err
	}

	im.log.Info("import batch %s done: %d videos, %d comments",
		summary.BatchID, summary.Videos, summary.Comments)
	return summary, nil
}

// ImportVideos ingests the video table. A missing source file is a warning
// condition, not an error: the store is simply left untouched.
func (im *Importer) ImportVideos(ctx context.Context, path string) (int, error) {
	table, err := NewTableReader(path).Read()
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeSourceMissing {
			im.log.Warn("video source missing, skipping: %s", path)
			return 0, nil
		}
		return 0, apperrors.Wrap(err, "video import failed")
	}

	count := 0
	for _, v := range NormalizeVideos(*table) {
		if _, err := core.ParseAwemeID(v.AwemeID); err != nil {
			im.log.Debug("skipping video row without usable aweme_id")
			continue
		}
		v := v
		if err := im.videos.Upsert(ctx, &v); err != nil {
			im.log.Error("upsert video %s: %v", v.AwemeID, err)
			continue
		}
		count++
	}

	im.log.Info("imported %d video records from %s", count, path)
	return count, nil
}

// ImportComments ingests the comment table. Rows with empty content are
// dropped, matching how the scraper export is cleaned before storage.
func (im *Importer) ImportComments(ctx context.Context, path string) (int, error) {
	table, err := NewTableReader(path).Read()
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeSourceMissing {
			im.log.Warn("comment source missing, skipping: %s", path)
			return 0, nil
		}
		return 0, apperrors.Wrap(err, "comment import failed")
	}

	count := 0
	for _, c := range NormalizeComments(*table) {
		if c.Content == "" {
			continue
		}
		c := c
		if err := im.comments.Insert(ctx, &c); err != nil {
			im.log.Error("insert comment by %s: %v", c.UserID, err)
			continue
		}
		count++
	}

	im.log.Info("imported %d comment records from %s", count, path)
	return count, nil
}
