package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"image-hosting-api/internal/infrastructure/jwt"
)

func TestAuthService_GenerateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret77"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	u := newTestUser(1, basicTier)
	u.Username = "alice"
	u.PasswordHash = &h

	jwtService := jwt.New("k")
	svc := NewAuthService(jwtService)

	tok, err := svc.GenerateToken(u, "secret77")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, u.UUID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = svc.GenerateToken(u, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.GenerateToken(nil, "secret77")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
