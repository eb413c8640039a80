// Package token issues and verifies the signed identity tokens used as
// bearer credentials. Tokens are stateless: nothing is persisted server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity snapshot embedded in every token.
type Claims struct {
	UserID   int64   `json:"userID"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Fullname *string `json:"fullname"`
	jwt.RegisteredClaims
}

var (
	// ErrExpired marks a well-formed, correctly signed token past its expiry.
	ErrExpired = errors.New("token expired")

	// ErrInvalid marks a malformed or tampered token, or one signed with
	// an unexpected algorithm.
	ErrInvalid = errors.New("token invalid")
)

// Issue produces a signed HS256 token embedding the claims, valid for ttl.
func Issue(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify validates signature and expiry and returns the embedded claims.
// An expired token fails with ErrExpired; anything else fails with ErrInvalid
// so callers can answer with distinct messages.
func Verify(tokenString, secret string) (*Claims, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !t.Valid {
		return nil, ErrInvalid
	}

	return &claims, nil
}

// Decode recovers the embedded claims WITHOUT verifying the signature.
// Trust boundary: only call this on a token the middleware has already
// verified in the same request; any other use is a vulnerability.
func Decode(tokenString string) (*Claims, error) {
	var claims Claims
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims)
	if err != nil {
		return nil, ErrInvalid
	}
	return &claims, nil
}
