package model

import (
	"errors"
	"time"
)

// Post represents a user's post with its counters.
// like_count and comment_count mirror the number of rows in post_likes and
// comments; they are maintained in the same transaction as those rows.
type Post struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	Title        string    `db:"title" json:"title"`
	Caption      string    `db:"caption" json:"caption"`
	PhotoURL     *string   `db:"photo_url" json:"photo_url"`
	PhotoKey     *string   `db:"photo_key" json:"-"`
	LikeCount    int       `db:"like_count" json:"likes"`
	CommentCount int       `db:"comment_count" json:"comments"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Like marks that a user liked a post. The pair is unique.
type Like struct {
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"liked_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreatePostRequest is the request body for creating a post.
// PhotoURL/PhotoKey come from the media presign endpoint.
type CreatePostRequest struct {
	Title    string  `json:"title"`
	Caption  string  `json:"caption"`
	PhotoURL *string `json:"photo_url"`
	PhotoKey *string `json:"photo_key"`
}

// UpdatePostRequest is the request body for updating a post.
// It deliberately does not share a struct with CreatePostRequest.
type UpdatePostRequest struct {
	Title    string  `json:"title"`
	Caption  string  `json:"caption"`
	PhotoURL *string `json:"photo_url"`
	PhotoKey *string `json:"photo_key"`
}

// ListQuery carries the common listing parameters after parsing.
type ListQuery struct {
	Search string
	Page   int
	Limit  int
}

// PostPage is one page of posts plus the numbers needed for pagination meta.
type PostPage struct {
	Items    []Post
	Total    int
	Page     int
	LastPage int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10

	MaxPostTitleLength   = 200
	MaxPostCaptionLength = 2200
)

var (
	ErrPostNotFound = errors.New("post does not exist")
	ErrNotPostOwner = errors.New("not the owner of this post")

	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post already unliked")

	ErrTitleRequired   = errors.New("title is required")
	ErrCaptionRequired = errors.New("caption is required")
	ErrTitleTooLong    = errors.New("title too long")
	ErrCaptionTooLong  = errors.New("caption too long")
)
