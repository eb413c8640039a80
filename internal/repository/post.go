package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"wavegram/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, title, caption, photo_url, photo_key, like_count, comment_count, created_at, updated_at`

// Create inserts a post with zeroed counters.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (user_id, title, caption, photo_url, photo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, like_count, comment_count, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, p.UserID, p.Title, p.Caption, p.PhotoURL, p.PhotoKey)
	if err := row.Scan(&p.ID, &p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET title = $1, caption = $2, photo_url = $3, photo_key = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query, p.Title, p.Caption, p.PhotoURL, p.PhotoKey, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// Delete removes the post row; likes and comments cascade via foreign keys.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check post exists: %w", err)
	}
	return exists, nil
}

// ListByAuthors returns one offset page of posts by the given authors,
// ordered by creation time (id as tie-break), plus the total count for the
// same filter so callers can compute last_page.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []int64, q model.ListQuery) ([]model.Post, int, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, 0, nil
	}

	offset := (q.Page - 1) * q.Limit

	listQuery := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE user_id = ANY($1) AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`
	var posts []model.Post
	err := r.db.SelectContext(ctx, &posts, listQuery, pq.Array(authorIDs), q.Search, q.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}

	countQuery := `
		SELECT COUNT(*)
		FROM posts
		WHERE user_id = ANY($1) AND ($2 = '' OR title ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, pq.Array(authorIDs), q.Search); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

// Like inserts a like row. Returns ErrAlreadyLiked on the unique-pair violation.
func (r *postRepository) Like(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error {
	query := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`
	_, err := tx.ExecContext(ctx, query, postID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// Unlike deletes a like row. Returns ErrNotLiked when no row matched.
func (r *postRepository) Unlike(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	result, err := tx.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}

// IncrementLikeCount atomically adjusts like_count inside the caller's transaction.
func (r *postRepository) IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	query := `UPDATE posts SET like_count = like_count + $1, updated_at = NOW() WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("failed to update like count: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// IncrementCommentCount atomically adjusts comment_count inside the caller's transaction.
func (r *postRepository) IncrementCommentCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	query := `UPDATE posts SET comment_count = comment_count + $1, updated_at = NOW() WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, delta, postID)
	if err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}
