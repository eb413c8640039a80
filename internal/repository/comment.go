package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"wavegram/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment inside the caller's transaction so the comment
// row and the post's comment_count move together.
func (r *commentRepository) Create(ctx context.Context, tx *sqlx.Tx, postID, userID int64, content string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (post_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, post_id, user_id, content, created_at, updated_at
	`

	var c model.Comment
	if err := tx.GetContext(ctx, &c, query, postID, userID, content); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return &c, nil
}
