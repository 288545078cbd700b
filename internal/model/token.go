package model

import "github.com/google/uuid"

// TokenManager issues and validates bearer access tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}
