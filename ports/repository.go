package ports

import (
	"context"

	"douyinsight/domain/record"
)

// VideoRepository defines the storage contract for video records.
// Import re-ingests by aweme_id with last-write-wins semantics: Upsert
// overwrites prior state instead of duplicating it.
type VideoRepository interface {
	Upsert(ctx context.Context, v *record.Video) error
	GetByAwemeID(ctx context.Context, awemeID string) (*record.Video, error)
	List(ctx context.Context) ([]record.Video, error)
	Clear(ctx context.Context) (int64, error)
}

// CommentRepository defines the storage contract for comment records.
// Comments carry no natural uniqueness constraint, so inserts are
// append-only and duplicates are permitted.
type CommentRepository interface {
	Insert(ctx context.Context, c *record.Comment) error
	List(ctx context.Context) ([]record.Comment, error)
	ListByVideo(ctx context.Context, awemeID string) ([]record.Comment, error)
	Clear(ctx context.Context) (int64, error)
}
