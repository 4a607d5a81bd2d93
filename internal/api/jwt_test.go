package api

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/pocket-arena/internal/constants"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "round-trip")
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	token, err := createSessionToken("ash@example.com", "Ash", time.Hour, now)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := parseSessionToken(token, now.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "ash@example.com", claims.Sub)
	assert.Equal(t, "Ash", claims.Name)

	_, err = parseSessionToken(token, now.Add(61*time.Minute))
	assert.ErrorIs(t, err, errTokenExpired)
}

func TestSessionTokenRejectsTampering(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "first")
	now := time.Now()
	token, err := createSessionToken("ash@example.com", "Ash", time.Hour, now)
	require.NoError(t, err)

	_, err = parseSessionToken("abc.def", now)
	assert.ErrorIs(t, err, errTokenFormat)

	parts := strings.Split(token, ".")
	forged, err := createSessionToken("misty@example.com", "Misty", time.Hour, now)
	require.NoError(t, err)
	swapped := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]
	_, err = parseSessionToken(swapped, now)
	assert.ErrorIs(t, err, errTokenSignature)

	t.Setenv(constants.EnvSessionSecret, "second")
	_, err = parseSessionToken(token, now)
	assert.ErrorIs(t, err, errTokenSignature)
}
