package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"wavegram/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByUsernameOrEmail matches the identifier against both columns (login).
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	// Update applies a partial update; empty fields keep their stored value.
	Update(ctx context.Context, id int64, req *model.UpdateUserRequest) error
	SetPhoto(ctx context.Context, id int64, photoURL, photoKey string) error
}

type FollowRepository interface {
	// Create inserts the edge; returns false when it already existed.
	Create(ctx context.Context, userID, followeeID int64) (bool, error)
	// Delete removes the edge; ErrNotFollowing when it was absent.
	Delete(ctx context.Context, userID, followeeID int64) error
	GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, postID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)
	// ListByAuthors returns one offset page plus the total row count for the filter.
	ListByAuthors(ctx context.Context, authorIDs []int64, q model.ListQuery) ([]model.Post, int, error)
	// Like/Unlike run inside the caller's transaction so the counter update
	// in Increment*Count commits or rolls back together with the row change.
	Like(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error
	Unlike(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error
	IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
	IncrementCommentCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
}

type CommentRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, postID, userID int64, content string) (*model.Comment, error)
}
