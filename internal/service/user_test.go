package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"wavegram/internal/config"
	"wavegram/internal/model"
	"wavegram/internal/token"
)

// mockUserRepository implements repository.UserRepository with function fields
// so each test wires only the calls it expects.
type mockUserRepository struct {
	createFn               func(ctx context.Context, user *model.User) error
	getByIDFn              func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn           func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFn        func(ctx context.Context, username string) (*model.User, error)
	getByUsernameOrEmailFn func(ctx context.Context, identifier string) (*model.User, error)
	updateFn               func(ctx context.Context, id int64, req *model.UpdateUserRequest) error
	setPhotoFn             func(ctx context.Context, id int64, photoURL, photoKey string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	return m.getByUsernameOrEmailFn(ctx, identifier)
}

func (m *mockUserRepository) Update(ctx context.Context, id int64, req *model.UpdateUserRequest) error {
	return m.updateFn(ctx, id, req)
}

func (m *mockUserRepository) SetPhoto(ctx context.Context, id int64, photoURL, photoKey string) error {
	return m.setPhotoFn(ctx, id, photoURL, photoKey)
}

type mockFollowRepository struct {
	createFn         func(ctx context.Context, userID, followeeID int64) (bool, error)
	deleteFn         func(ctx context.Context, userID, followeeID int64) error
	getFolloweeIDsFn func(ctx context.Context, userID int64) ([]int64, error)
}

func (m *mockFollowRepository) Create(ctx context.Context, userID, followeeID int64) (bool, error) {
	return m.createFn(ctx, userID, followeeID)
}

func (m *mockFollowRepository) Delete(ctx context.Context, userID, followeeID int64) error {
	return m.deleteFn(ctx, userID, followeeID)
}

func (m *mockFollowRepository) GetFolloweeIDs(ctx context.Context, userID int64) ([]int64, error) {
	return m.getFolloweeIDsFn(ctx, userID)
}

// mockFollowSet records invalidations so follow/unfollow tests can assert
// the cache was dropped.
type mockFollowSet struct {
	getFn       func(ctx context.Context, userID int64) ([]int64, bool, error)
	setFn       func(ctx context.Context, userID int64, followeeIDs []int64) error
	invalidated []int64
}

func (m *mockFollowSet) Get(ctx context.Context, userID int64) ([]int64, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, false, nil
}

func (m *mockFollowSet) Set(ctx context.Context, userID int64, followeeIDs []int64) error {
	if m.setFn != nil {
		return m.setFn(ctx, userID, followeeIDs)
	}
	return nil
}

func (m *mockFollowSet) Invalidate(ctx context.Context, userID int64) error {
	m.invalidated = append(m.invalidated, userID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "user-service-test-secret",
		TokenMaxAge: 3600,
		BcryptCost:  bcrypt.MinCost,
	}
}

func notFoundUserRepo() *mockUserRepository {
	return &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, model.ErrUserNotFound
		},
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, model.ErrUserNotFound
		},
	}
}

func TestSignUp_Success(t *testing.T) {
	userRepo := notFoundUserRepo()

	var created *model.User
	userRepo.createFn = func(ctx context.Context, user *model.User) error {
		user.ID = 1
		created = user
		return nil
	}

	svc := NewUserService(userRepo, &mockFollowRepository{}, nil, testConfig())

	err := svc.SignUp(context.Background(), &model.SignUpRequest{
		Email:    "new@example.com",
		Username: "newuser",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if created == nil {
		t.Fatal("user was not persisted")
	}
	if created.Email != "new@example.com" || created.Username != "newuser" {
		t.Errorf("persisted user = %q/%q", created.Email, created.Username)
	}
	if created.PasswordHashed == "secret123" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHashed), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestSignUp_Conflicts(t *testing.T) {
	existing := &model.User{ID: 1, Email: "taken@example.com", Username: "taken"}

	tests := []struct {
		name    string
		repo    *mockUserRepository
		wantErr error
	}{
		{
			name: "email already used",
			repo: &mockUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					return existing, nil
				},
			},
			wantErr: model.ErrEmailExists,
		},
		{
			name: "username already used",
			repo: &mockUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					return nil, model.ErrUserNotFound
				},
				getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
					return existing, nil
				},
			},
			wantErr: model.ErrUsernameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(tt.repo, &mockFollowRepository{}, nil, testConfig())
			err := svc.SignUp(context.Background(), &model.SignUpRequest{
				Email:    "taken@example.com",
				Username: "taken",
				Password: "secret123",
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	stored := &model.User{
		ID:             5,
		Email:          "alice@example.com",
		Username:       "alice",
		PasswordHashed: string(hash),
	}

	tests := []struct {
		name       string
		identifier string
		password   string
		lookupErr  error
		wantErr    error
	}{
		{"by username", "alice", "secret123", nil, nil},
		{"by email", "alice@example.com", "secret123", nil, nil},
		{"unknown identifier", "nobody", "secret123", model.ErrUserNotFound, model.ErrUserNotFound},
		{"wrong password", "alice", "wrong", nil, model.ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{
				getByUsernameOrEmailFn: func(ctx context.Context, identifier string) (*model.User, error) {
					if tt.lookupErr != nil {
						return nil, tt.lookupErr
					}
					if identifier != tt.identifier {
						t.Errorf("lookup identifier = %q, want %q", identifier, tt.identifier)
					}
					return stored, nil
				},
			}
			svc := NewUserService(userRepo, &mockFollowRepository{}, nil, testConfig())

			data, err := svc.LogIn(context.Background(), &model.LogInRequest{
				Username: tt.identifier,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LogIn: %v", err)
			}
			if data.UserID != stored.ID {
				t.Errorf("UserID = %d, want %d", data.UserID, stored.ID)
			}

			claims, err := token.Verify(data.Token, testConfig().JWTSecret)
			if err != nil {
				t.Fatalf("issued token does not verify: %v", err)
			}
			if claims.UserID != stored.ID || claims.Username != stored.Username || claims.Email != stored.Email {
				t.Errorf("claims = %+v, want snapshot of %+v", claims, stored)
			}
		})
	}
}

func TestUpdate_NotOwner(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockFollowRepository{}, nil, testConfig())

	err := svc.Update(context.Background(), 1, 2, &model.UpdateUserRequest{Username: "other"})
	if !errors.Is(err, model.ErrNotProfileOwner) {
		t.Errorf("error = %v, want ErrNotProfileOwner", err)
	}
}

func TestUpdate_Conflicts(t *testing.T) {
	other := &model.User{ID: 99, Email: "other@example.com", Username: "other"}

	tests := []struct {
		name    string
		req     *model.UpdateUserRequest
		wantErr error
	}{
		{"email taken by another user", &model.UpdateUserRequest{Email: "other@example.com"}, model.ErrEmailExists},
		{"username taken by another user", &model.UpdateUserRequest{Username: "other"}, model.ErrUsernameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{
				getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
					return other, nil
				},
				getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
					return other, nil
				},
			}
			svc := NewUserService(userRepo, &mockFollowRepository{}, nil, testConfig())

			err := svc.Update(context.Background(), 1, 1, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// Re-submitting your own current email or username is not a conflict.
func TestUpdate_SameValuesKept(t *testing.T) {
	self := &model.User{ID: 1, Email: "me@example.com", Username: "me"}

	updated := false
	userRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return self, nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return self, nil
		},
		updateFn: func(ctx context.Context, id int64, req *model.UpdateUserRequest) error {
			updated = true
			return nil
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, nil, testConfig())

	err := svc.Update(context.Background(), 1, 1, &model.UpdateUserRequest{
		Email:    "me@example.com",
		Username: "me",
		Fullname: "Me Myself",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated {
		t.Error("repository update was not called")
	}
}

func TestFollow(t *testing.T) {
	tests := []struct {
		name      string
		targetID  int64
		targetErr error
		inserted  bool
		wantErr   error
	}{
		{"success", 2, nil, true, nil},
		{"self follow", 1, nil, false, model.ErrCannotFollowSelf},
		{"target does not exist", 2, model.ErrUserNotFound, false, model.ErrUserNotFound},
		{"already following", 2, nil, false, model.ErrAlreadyFollowing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{
				getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
					if tt.targetErr != nil {
						return nil, tt.targetErr
					}
					return &model.User{ID: id}, nil
				},
			}
			followRepo := &mockFollowRepository{
				createFn: func(ctx context.Context, userID, followeeID int64) (bool, error) {
					return tt.inserted, nil
				},
			}
			followSet := &mockFollowSet{}
			svc := NewUserService(userRepo, followRepo, followSet, testConfig())

			err := svc.Follow(context.Background(), 1, tt.targetID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr == nil {
				if len(followSet.invalidated) != 1 || followSet.invalidated[0] != 1 {
					t.Errorf("invalidated = %v, want [1]", followSet.invalidated)
				}
			} else if len(followSet.invalidated) != 0 {
				t.Errorf("cache invalidated on failed follow: %v", followSet.invalidated)
			}
		})
	}
}

func TestUnfollow(t *testing.T) {
	tests := []struct {
		name      string
		targetID  int64
		deleteErr error
		wantErr   error
	}{
		{"success", 2, nil, nil},
		{"self unfollow", 1, nil, model.ErrCannotFollowSelf},
		{"not following", 2, model.ErrNotFollowing, model.ErrNotFollowing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{
				getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
					return &model.User{ID: id}, nil
				},
			}
			followRepo := &mockFollowRepository{
				deleteFn: func(ctx context.Context, userID, followeeID int64) error {
					return tt.deleteErr
				},
			}
			followSet := &mockFollowSet{}
			svc := NewUserService(userRepo, followRepo, followSet, testConfig())

			err := svc.Unfollow(context.Background(), 1, tt.targetID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && len(followSet.invalidated) != 1 {
				t.Errorf("invalidated = %v, want exactly one entry", followSet.invalidated)
			}
		})
	}
}

func TestSetPhoto(t *testing.T) {
	oldKey := "profiles/old.jpg"
	stored := &model.User{ID: 1, PhotoKey: &oldKey}

	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return stored, nil
		},
		setPhotoFn: func(ctx context.Context, id int64, photoURL, photoKey string) error {
			if photoKey != "profiles/new.jpg" {
				t.Errorf("photoKey = %q, want %q", photoKey, "profiles/new.jpg")
			}
			return nil
		},
	}
	svc := NewUserService(userRepo, &mockFollowRepository{}, nil, testConfig())

	previous, err := svc.SetPhoto(context.Background(), 1, 1, &model.UploadResult{
		URL: "https://cdn.example.com/profiles/new.jpg",
		Key: "profiles/new.jpg",
	})
	if err != nil {
		t.Fatalf("SetPhoto: %v", err)
	}
	if previous != oldKey {
		t.Errorf("previous key = %q, want %q", previous, oldKey)
	}
}

func TestSetPhoto_NotOwner(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockFollowRepository{}, nil, testConfig())

	_, err := svc.SetPhoto(context.Background(), 1, 2, &model.UploadResult{Key: "profiles/x.jpg"})
	if !errors.Is(err, model.ErrNotProfileOwner) {
		t.Errorf("error = %v, want ErrNotProfileOwner", err)
	}
}
