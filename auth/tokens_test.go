package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndParseTokenPair(t *testing.T) {
	pair, err := IssueTokenPair(testSecret, 42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	require.NotEqual(t, pair.Access, pair.Refresh)

	userID, err := ParseAccessToken(testSecret, pair.Access)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestParseAccessTokenRejectsRefreshToken(t *testing.T) {
	pair, err := IssueTokenPair(testSecret, 42)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, pair.Refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	pair, err := IssueTokenPair(testSecret, 42)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", pair.Access)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeRefreshToken(t *testing.T) {
	db := newTestDB(t)
	pair, err := IssueTokenPair(testSecret, 7)
	require.NoError(t, err)

	// First revoke succeeds, second sees the blacklist.
	require.NoError(t, RevokeRefreshToken(db, testSecret, pair.Refresh))
	require.ErrorIs(t, RevokeRefreshToken(db, testSecret, pair.Refresh), ErrInvalidToken)
}

func TestRevokeRefreshTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)

	require.ErrorIs(t, RevokeRefreshToken(db, testSecret, "not-a-token"), ErrInvalidToken)
}

func TestRevokeRefreshTokenRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	pair, err := IssueTokenPair(testSecret, 7)
	require.NoError(t, err)

	require.ErrorIs(t, RevokeRefreshToken(db, testSecret, pair.Access), ErrInvalidToken)
}
