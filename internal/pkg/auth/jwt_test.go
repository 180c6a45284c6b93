package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", TokenIssuer: "zevabayan"})

	token, err := svc.GenerateToken(&models.User{ID: 3, Username: "mod", IsStaff: true})
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "mod", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "zevabayan", claims.Issuer)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "one"})
	verifier := NewJWTService(JWTConfig{SecretKey: "two"})

	token, err := issuer.GenerateToken(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret"})
	svc.config.AccessTokenExp = -time.Minute

	token, err := svc.GenerateToken(&models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractBearerToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
