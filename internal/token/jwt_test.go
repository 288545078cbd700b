package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute)
	u := uuid.New()

	access, err := j.GenerateAccessToken(u)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_TamperedSignature(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute)

	access, err := j.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	parts[2] = "A" + parts[2][1:]
	tampered := strings.Join(parts, ".")

	_, err = j.ParseAccessToken(tampered)
	require.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret-a", 15*time.Minute)
	verifier := NewJWT("secret-b", 15*time.Minute)

	access, err := issuer.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("secret", -time.Minute)

	access, err := j.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = j.ParseAccessToken(access)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute)

	_, err := j.ParseAccessToken("not a token")
	require.Error(t, err)
}
