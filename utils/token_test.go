package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usualmarts/sfds-api/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Email: "student@example.com", Role: models.RoleStudent}

	token, err := CreateAccessToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "student@example.com", claims["email"])
	assert.Equal(t, "STUDENT", claims["role"])
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	user := &models.User{ID: 7, Email: "x@example.com", Role: models.RoleInstructor}

	token, err := CreateRefreshToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	jti, _ := claims["jti"].(string)
	assert.NotEmpty(t, jti)
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	token, err := CreateVerificationToken(99)
	require.NoError(t, err)

	id, err := DecodeVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(99), id)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleStudent}
	token, err := CreateAccessToken(user)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	_, err = ParseToken("not.a.token")
	assert.Error(t, err)
}
