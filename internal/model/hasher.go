package model

// PasswordHasher performs one-way password hashing and verification.
// Verify must return false, not an error, on a malformed hash.
type PasswordHasher interface {
	Hash(plaintext string) ([]byte, error)
	Verify(plaintext string, hash []byte) bool
}
