package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"commented_by"`
	Content   string    `db:"content" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateCommentRequest is the request body for commenting on a post.
type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

const MaxCommentLength = 2200

var (
	ErrCommentRequired = errors.New("comment is required")
	ErrCommentTooLong  = errors.New("comment too long")
)
