package model

import (
	"errors"
	"time"
)

// User represents an account in the system.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Username       string    `db:"username" json:"username"`
	PasswordHashed string    `db:"password_hashed" json:"-"`
	Fullname       *string   `db:"fullname" json:"fullname"`
	PhotoURL       *string   `db:"photo_url" json:"photo_url"`
	PhotoKey       *string   `db:"photo_key" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// SignUpRequest is the request body for account creation.
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LogInRequest is the request body for login. Username also accepts an email.
type LogInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogInData is the success payload of a login.
type LogInData struct {
	UserID int64  `json:"userID"`
	Token  string `json:"token"`
}

// UpdateUserRequest is the request body for a profile update.
// Empty fields are left untouched.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

var (
	ErrUserNotFound = errors.New("user does not exist")

	ErrEmailExists    = errors.New("email already exist")
	ErrUsernameExists = errors.New("username already exist")

	// ErrWrongPassword is returned when the password does not match the stored hash.
	ErrWrongPassword = errors.New("the password you entered is incorrect")

	// ErrNotProfileOwner is returned when a caller mutates a profile that is not theirs.
	ErrNotProfileOwner = errors.New("not the owner of this profile")
)
