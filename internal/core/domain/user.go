package domain

import (
	"errors"
	"time"
)

var ErrEmailTaken = errors.New("email already in use")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidToken = errors.New("invalid token")

// User models an account holder.
//
// PasswordHash is excluded from JSON marshalling so the hash can never
// leave the service boundary, no matter which handler serializes the
// record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
