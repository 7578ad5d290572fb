package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidEmail is returned for empty or malformed email addresses.
	ErrInvalidEmail = errors.New("a valid email address is required")
	// ErrInvalidPassword is returned for passwords below the minimum length.
	ErrInvalidPassword = errors.New("password must have at least 8 characters")
)

// User is an account holder. The password is stored only as a bcrypt hash.
type User struct {
	id           string
	name         string
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user with an already-hashed password.
func NewUser(name, email, passwordHash string, now time.Time) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidEmail
	}
	return User{
		id:           uuid.New().String(),
		name:         strings.TrimSpace(name),
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence.
func ReconstructUser(id, name, email, passwordHash string, createdAt, updatedAt time.Time) User {
	return User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// WithPasswordHash returns a copy carrying a new password hash.
func (u User) WithPasswordHash(hash string, now time.Time) User {
	next := u
	next.passwordHash = hash
	next.updatedAt = now
	return next
}

func (u User) ID() string           { return u.id }
func (u User) Name() string         { return u.name }
func (u User) Email() string        { return u.email }
func (u User) PasswordHash() string { return u.passwordHash }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }

// PasswordResetToken is a single-use token emailed to a user. Expired or
// consumed tokens are rejected.
type PasswordResetToken struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// NewPasswordResetToken creates a token valid for the given duration.
func NewPasswordResetToken(email string, ttl time.Duration, now time.Time) PasswordResetToken {
	return PasswordResetToken{
		Token:     uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the token is past its expiry.
func (t PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
