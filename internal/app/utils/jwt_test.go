package utils

import (
	"testing"
	"time"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	user := &ds.Users{ID: 7, Login: "reader"}

	token, err := GenerateAccessToken(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret", TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "reader", claims.Login)
	assert.InDelta(t, time.Hour.Seconds(), RemainingTTL(claims).Seconds(), 5)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(&ds.Users{ID: 1, Login: "a"}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other", TokenTypeAccess)
	assert.Error(t, err)
}

func TestValidateToken_RefreshIsNotAccess(t *testing.T) {
	token, err := GenerateRefreshToken(&ds.Users{ID: 1, Login: "a"}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(&ds.Users{ID: 1, Login: "a"}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret", TokenTypeAccess)
	assert.Error(t, err)
}
