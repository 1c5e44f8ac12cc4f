package auth_test

import (
	"testing"
	"time"

	"dayhub-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

func TestSessionRoundTrip(t *testing.T) {
	token, err := auth.MintSession("secret", auth.SessionClaims{
		Role:          auth.RoleInterpreter,
		InterpreterID: 42,
		Email:         "maria@example.com",
	}, time.Hour)
	assert.NoError(t, err)

	claims, err := auth.ParseSession("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, auth.RoleInterpreter, claims.Role)
	assert.Equal(t, int64(42), claims.InterpreterID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestParseSessionRejections(t *testing.T) {
	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		token, err := auth.MintSession("secret-a", auth.SessionClaims{Role: auth.RoleAdmin}, time.Hour)
		assert.NoError(t, err)

		_, err = auth.ParseSession("secret-b", token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		token, err := auth.MintSession("secret", auth.SessionClaims{Role: auth.RoleAdmin}, -time.Minute)
		assert.NoError(t, err)

		_, err = auth.ParseSession("secret", token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject tokens carrying unknown roles", func(t *testing.T) {
		token, err := auth.MintSession("secret", auth.SessionClaims{Role: "superuser"}, time.Hour)
		assert.NoError(t, err)

		_, err = auth.ParseSession("secret", token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := auth.ParseSession("secret", "not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMintSessionRequiresSecret(t *testing.T) {
	_, err := auth.MintSession("", auth.SessionClaims{Role: auth.RoleAdmin}, time.Hour)
	assert.Error(t, err)
}
