package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.IssueToken(Session{UserID: 7, UserName: "Marta", Role: "deposito"})
	require.NoError(t, err)

	session, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "Marta", session.UserName)
	assert.Equal(t, "deposito", session.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.IssueToken(Session{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	other := NewManager("other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.IssueToken(Session{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
