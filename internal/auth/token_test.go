package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndParseReconnectTokenRoundTrips(t *testing.T) {
	tok, err := IssueReconnectToken(testSecret, "match-1", "player-a", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	matchID, playerID, err := ParseReconnectToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "match-1", matchID)
	assert.Equal(t, "player-a", playerID)
}

func TestParseReconnectTokenRejectsWrongSecret(t *testing.T) {
	tok, err := IssueReconnectToken(testSecret, "match-1", "player-a", time.Minute)
	require.NoError(t, err)

	_, _, err = ParseReconnectToken("a-different-secret", tok)
	assert.ErrorIs(t, err, errInvalidReconnectToken)
}

func TestParseReconnectTokenRejectsExpiredToken(t *testing.T) {
	tok, err := IssueReconnectToken(testSecret, "match-1", "player-a", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseReconnectToken(testSecret, tok)
	assert.ErrorIs(t, err, errInvalidReconnectToken)
}

func TestParseReconnectTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseReconnectToken(testSecret, "not-a-jwt")
	assert.ErrorIs(t, err, errInvalidReconnectToken)
}
