package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	ListWithFaceEncoding(ctx context.Context) ([]User, error)
}

// User represents a stored user with authentication material.
// PasswordHash is nil for face-only accounts and FaceEncoding is nil unless
// the account was enrolled with a face image; at least one of the two is set.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Country      string
	AgreeToTerms bool
	PasswordHash []byte
	FaceEncoding []float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin reports whether the record holds at least one usable credential.
func (u User) CanLogin() bool {
	return len(u.PasswordHash) > 0 || len(u.FaceEncoding) > 0
}
