package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"wavegram/internal/cache"
	"wavegram/internal/model"
	"wavegram/internal/repository"
)

// PostService handles business logic for posts, likes and comments.
type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	commentRepo repository.CommentRepository
	followCache cache.FollowSet // nil when redis is not configured
	db          *sqlx.DB
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	commentRepo repository.CommentRepository,
	followCache cache.FollowSet,
	db *sqlx.DB,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		commentRepo: commentRepo,
		followCache: followCache,
		db:          db,
	}
}

func validatePostFields(title, caption string) error {
	if title == "" {
		return model.ErrTitleRequired
	}
	if len(title) > model.MaxPostTitleLength {
		return model.ErrTitleTooLong
	}
	if caption == "" {
		return model.ErrCaptionRequired
	}
	if len(caption) > model.MaxPostCaptionLength {
		return model.ErrCaptionTooLong
	}
	return nil
}

// Create inserts a post with zeroed counters for the given author.
func (s *PostService) Create(ctx context.Context, authorID int64, req *model.CreatePostRequest) (*model.Post, error) {
	if err := validatePostFields(req.Title, req.Caption); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:   authorID,
		Title:    req.Title,
		Caption:  req.Caption,
		PhotoURL: req.PhotoURL,
		PhotoKey: req.PhotoKey,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Update mutates a post after the ownership check.
func (s *PostService) Update(ctx context.Context, postID, callerID int64, req *model.UpdatePostRequest) (*model.Post, error) {
	if err := validatePostFields(req.Title, req.Caption); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != callerID {
		return nil, model.ErrNotPostOwner
	}

	post.Title = req.Title
	post.Caption = req.Caption
	if req.PhotoURL != nil {
		post.PhotoURL = req.PhotoURL
		post.PhotoKey = req.PhotoKey
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes a post after the ownership check. It returns the post's
// photo key, if any, so the handler can clean up the stored object.
func (s *PostService) Delete(ctx context.Context, postID, callerID int64) (photoKey string, err error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if post.UserID != callerID {
		return "", model.ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return "", err
	}

	if post.PhotoKey != nil {
		photoKey = *post.PhotoKey
	}
	return photoKey, nil
}

// ListMine returns one page of the caller's own posts.
func (s *PostService) ListMine(ctx context.Context, callerID int64, q model.ListQuery) (*model.PostPage, error) {
	return s.listPage(ctx, []int64{callerID}, q)
}

// ListFollowed returns one page of posts authored by users the caller
// follows. An empty follow set short-circuits to an empty page without
// touching the posts table.
func (s *PostService) ListFollowed(ctx context.Context, callerID int64, q model.ListQuery) (*model.PostPage, error) {
	followees, err := s.resolveFollowees(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if len(followees) == 0 {
		return &model.PostPage{Items: []model.Post{}, Total: 0, Page: q.Page, LastPage: 0}, nil
	}

	return s.listPage(ctx, followees, q)
}

func (s *PostService) listPage(ctx context.Context, authorIDs []int64, q model.ListQuery) (*model.PostPage, error) {
	posts, total, err := s.postRepo.ListByAuthors(ctx, authorIDs, q)
	if err != nil {
		return nil, err
	}

	return &model.PostPage{
		Items:    posts,
		Total:    total,
		Page:     q.Page,
		LastPage: (total + q.Limit - 1) / q.Limit,
	}, nil
}

// resolveFollowees reads the caller's follow set, preferring the cache.
// Cache errors degrade to the repository; they never fail the request.
func (s *PostService) resolveFollowees(ctx context.Context, callerID int64) ([]int64, error) {
	if s.followCache != nil {
		ids, found, err := s.followCache.Get(ctx, callerID)
		if err != nil {
			log.Printf("[PostService] Follow-set cache read failed: user=%d err=%v", callerID, err)
		} else if found {
			return ids, nil
		}
	}

	ids, err := s.followRepo.GetFolloweeIDs(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if s.followCache != nil && len(ids) > 0 {
		if err := s.followCache.Set(ctx, callerID, ids); err != nil {
			log.Printf("[PostService] Follow-set cache write failed: user=%d err=%v", callerID, err)
		}
	}

	return ids, nil
}

// Like adds a like to a post. The like row and the counter move in one
// transaction so like_count always equals the number of like rows.
func (s *PostService) Like(ctx context.Context, postID, callerID int64) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return model.ErrPostNotFound
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.postRepo.Like(ctx, tx, postID, callerID); err != nil {
		return err
	}

	if err := s.postRepo.IncrementLikeCount(ctx, tx, postID, 1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Unlike removes a like, pairing the row delete with the counter decrement.
func (s *PostService) Unlike(ctx context.Context, postID, callerID int64) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return model.ErrPostNotFound
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.postRepo.Unlike(ctx, tx, postID, callerID); err != nil {
		return err
	}

	if err := s.postRepo.IncrementLikeCount(ctx, tx, postID, -1); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Comment adds a comment, pairing the insert with the counter increment.
func (s *PostService) Comment(ctx context.Context, postID, callerID int64, req *model.CreateCommentRequest) (*model.Comment, error) {
	if req.Comment == "" {
		return nil, model.ErrCommentRequired
	}
	if len(req.Comment) > model.MaxCommentLength {
		return nil, model.ErrCommentTooLong
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	comment, err := s.commentRepo.Create(ctx, tx, postID, callerID, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementCommentCount(ctx, tx, postID, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return comment, nil
}
