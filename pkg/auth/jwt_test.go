package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifyToken(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	userID := uuid.New()

	token, err := j.CreateToken(userID)
	require.NoError(t, err)

	got, err := j.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenCarriesIssuedAtAndExpiry(t *testing.T) {
	now := time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC)
	j := &JWT{Secret: "secret", Expires: 2 * time.Hour, Now: func() time.Time { return now }}

	token, err := j.CreateToken(uuid.New())
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.UserID)
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	issuer := &JWT{Secret: "secret", Expires: time.Hour, Now: func() time.Time { return issued }}

	token, err := issuer.CreateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).VerifyToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyTokenWithWrongSecret(t *testing.T) {
	token, err := NewJWT("secret", time.Hour).CreateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).VerifyToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyMalformedToken(t *testing.T) {
	_, err := NewJWT("secret", time.Hour).VerifyToken("not.a.token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = BearerToken("Token abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = BearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
