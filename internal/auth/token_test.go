package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", 30*24*time.Hour, nil)

	token, err := manager.Issue(RoleStudent, 42, "ana@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session := manager.Parse(token)
	require.NotNil(t, session)
	assert.Equal(t, RoleStudent, session.Role)
	assert.Equal(t, int64(42), session.AccountID)
	assert.Equal(t, "ana@x.com", session.Email)
	assert.True(t, session.IsStudent())
	assert.False(t, session.IsProfessor())
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour, nil)

	_, err := manager.Issue("admin", 1, "admin@x.com")
	assert.Error(t, err)
}

func TestParseInvalidTokens(t *testing.T) {
	manager := NewTokenManager("secret", time.Hour, nil)

	t.Run("empty token", func(t *testing.T) {
		assert.Nil(t, manager.Parse(""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Nil(t, manager.Parse("not-a-jwt"))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour, nil)
		token, err := other.Issue(RoleProfessor, 1, "otero@x.com")
		require.NoError(t, err)

		assert.Nil(t, manager.Parse(token))
	})
}

func TestParseExpiredToken(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt
	manager := NewTokenManager("secret", 30*24*time.Hour, func() time.Time { return clock })

	token, err := manager.Issue(RoleStudent, 42, "ana@x.com")
	require.NoError(t, err)

	clock = issuedAt.Add(29 * 24 * time.Hour)
	assert.NotNil(t, manager.Parse(token), "token should still be valid before the 30 day window ends")

	clock = issuedAt.Add(31 * 24 * time.Hour)
	assert.Nil(t, manager.Parse(token), "token should expire after 30 days")
}
