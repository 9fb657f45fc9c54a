// Package sqlite provides the embedded store used when no Postgres URL is
// configured. The adapters mirror the postgres package with sqlite
// placeholder syntax.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"douyinsight/domain/record"
	apperrors "douyinsight/internal/errors"
	"douyinsight/ports"
)

type videoRepository struct {
	db *sqlx.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sqlx.DB) ports.VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Upsert(ctx context.Context, v *record.Video) error {
	query := `INSERT INTO video_data (
		aweme_id, user_name, fans_count, description, publish_time,
		duration, like_count, comment_count, share_count, collect_count
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (aweme_id) DO UPDATE SET
		user_name = excluded.user_name,
		fans_count = excluded.fans_count,
		description = excluded.description,
		publish_time = excluded.publish_time,
		duration = excluded.duration,
		like_count = excluded.like_count,
		comment_count = excluded.comment_count,
		share_count = excluded.share_count,
		collect_count = excluded.collect_count`

	_, err := r.db.ExecContext(ctx, query,
		v.AwemeID, v.UserName, v.FansCount, v.Description, v.PublishTime,
		v.DurationSeconds, v.LikeCount, v.CommentCount, v.ShareCount, v.CollectCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByAwemeID(ctx context.Context, awemeID string) (*record.Video, error) {
	query := `SELECT aweme_id, user_name, fans_count, description, publish_time,
		duration, like_count, comment_count, share_count, collect_count
	FROM video_data WHERE aweme_id = ?`

	var v record.Video
	err := r.db.QueryRowContext(ctx, query, awemeID).Scan(
		&v.AwemeID, &v.UserName, &v.FansCount, &v.Description, &v.PublishTime,
		&v.DurationSeconds, &v.LikeCount, &v.CommentCount, &v.ShareCount, &v.CollectCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("video")
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &v, nil
}

func (r *videoRepository) List(ctx context.Context) ([]record.Video, error) {
	query := `SELECT aweme_id, user_name, fans_count, description, publish_time,
		duration, like_count, comment_count, share_count, collect_count
	FROM video_data ORDER BY aweme_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []record.Video
	for rows.Next() {
		var v record.Video
		err := rows.Scan(
			&v.AwemeID, &v.UserName, &v.FansCount, &v.Description, &v.PublishTime,
			&v.DurationSeconds, &v.LikeCount, &v.CommentCount, &v.ShareCount, &v.CollectCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *videoRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM video_data`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear videos: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
