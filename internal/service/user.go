package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wavegram/internal/cache"
	"wavegram/internal/config"
	"wavegram/internal/model"
	"wavegram/internal/repository"
	"wavegram/internal/token"
)

// UserService handles business logic for account and follow operations.
type UserService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	followCache cache.FollowSet // nil when redis is not configured
	config      *config.Config
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	followCache cache.FollowSet,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		followCache: followCache,
		config:      cfg,
	}
}

// SignUp creates a new account. The caller must log in separately; no token
// is issued here.
func (s *UserService) SignUp(ctx context.Context, req *model.SignUpRequest) error {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return model.ErrEmailExists
	} else if err != model.ErrUserNotFound {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return model.ErrUsernameExists
	} else if err != model.ErrUserNotFound {
		return fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          req.Email,
		Username:       req.Username,
		PasswordHashed: string(hashed),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// LogIn authenticates by username or email and issues an identity token
// embedding the profile snapshot.
func (s *UserService) LogIn(ctx context.Context, req *model.LogInRequest) (*model.LogInData, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrWrongPassword
	}

	claims := token.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
	}

	signed, err := token.Issue(claims, s.config.JWTSecret, time.Duration(s.config.TokenMaxAge)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.LogInData{UserID: user.ID, Token: signed}, nil
}

// Update applies a partial profile update after ownership and uniqueness checks.
func (s *UserService) Update(ctx context.Context, id, callerID int64, req *model.UpdateUserRequest) error {
	if id != callerID {
		return model.ErrNotProfileOwner
	}

	if req.Email != "" {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err == nil && existing.ID != id {
			return model.ErrEmailExists
		} else if err != nil && err != model.ErrUserNotFound {
			return fmt.Errorf("failed to check email: %w", err)
		}
	}

	if req.Username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, req.Username)
		if err == nil && existing.ID != id {
			return model.ErrUsernameExists
		} else if err != nil && err != model.ErrUserNotFound {
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	return s.userRepo.Update(ctx, id, req)
}

// Follow inserts a directed edge from caller to target.
func (s *UserService) Follow(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	inserted, err := s.followRepo.Create(ctx, callerID, targetID)
	if err != nil {
		return err
	}
	if !inserted {
		return model.ErrAlreadyFollowing
	}

	s.invalidateFollowSet(ctx, callerID)
	return nil
}

// Unfollow removes the edge from caller to target.
func (s *UserService) Unfollow(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, callerID, targetID); err != nil {
		return err
	}

	s.invalidateFollowSet(ctx, callerID)
	return nil
}

// SetPhoto records a freshly uploaded profile photo and returns the previous
// storage key so the handler can clean up the old object.
func (s *UserService) SetPhoto(ctx context.Context, id, callerID int64, upload *model.UploadResult) (previousKey string, err error) {
	if id != callerID {
		return "", model.ErrNotProfileOwner
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetPhoto(ctx, id, upload.URL, upload.Key); err != nil {
		return "", err
	}

	if user.PhotoKey != nil {
		previousKey = *user.PhotoKey
	}
	return previousKey, nil
}

// invalidateFollowSet drops the cached follow set. Best effort: a cache
// failure must not fail the follow/unfollow that already committed.
func (s *UserService) invalidateFollowSet(ctx context.Context, userID int64) {
	if s.followCache == nil {
		return
	}
	if err := s.followCache.Invalidate(ctx, userID); err != nil {
		log.Printf("[UserService] Failed to invalidate follow set: user=%d err=%v", userID, err)
	}
}
