package model

import (
	"errors"
	"time"
)

// Follow is a directed edge: user_id follows followee_id.
type Follow struct {
	UserID     int64     `db:"user_id" json:"user_id"`
	FolloweeID int64     `db:"followee_id" json:"follow_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

var (
	ErrCannotFollowSelf = errors.New("can not follow yourself")
	ErrAlreadyFollowing = errors.New("user already followed")
	ErrNotFollowing     = errors.New("user already unfollowed")
)
