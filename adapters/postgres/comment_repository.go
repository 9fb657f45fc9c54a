package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"douyinsight/domain/record"
	"douyinsight/ports"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sqlx.DB) ports.CommentRepository {
	return &commentRepository{db: db}
}

// Insert appends one comment. Comments are append-only; re-imports add
// rows rather than replacing them.
func (r *commentRepository) Insert(ctx context.Context, c *record.Comment) error {
	query := `INSERT INTO comment_data (
		user_id, user_name, content, comment_time, user_ip, like_count, aweme_id
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		c.UserID, c.UserName, c.Content, c.CommentTime, c.UserIP, c.LikeCount, c.AwemeID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// List retrieves all comments in insertion order
func (r *commentRepository) List(ctx context.Context) ([]record.Comment, error) {
	return r.query(ctx, `SELECT user_id, user_name, content, comment_time, user_ip, like_count, aweme_id
		FROM comment_data ORDER BY id`)
}

// ListByVideo retrieves the comments of one video in insertion order
func (r *commentRepository) ListByVideo(ctx context.Context, awemeID string) ([]record.Comment, error) {
	return r.query(ctx, `SELECT user_id, user_name, content, comment_time, user_ip, like_count, aweme_id
		FROM comment_data WHERE aweme_id = $1 ORDER BY id`, awemeID)
}

// Clear removes all comments and reports how many rows were deleted
func (r *commentRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comment_data`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear comments: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *commentRepository) query(ctx context.Context, query string, args ...interface{}) ([]record.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []record.Comment
	for rows.Next() {
		var c record.Comment
		err := rows.Scan(
			&c.UserID, &c.UserName, &c.Content, &c.CommentTime, &c.UserIP, &c.LikeCount, &c.AwemeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
