package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "2024-03-09", FormatDate(d))

	_, err = ParseDate("09.03.2024")
	assert.Error(t, err)
}

func TestDateOnlyNormalizes(t *testing.T) {
	loc := time.FixedZone("plus9", 9*3600)
	stamp := time.Date(2024, 3, 9, 1, 30, 0, 0, loc) // 2024-03-08 16:30 UTC
	assert.Equal(t, "2024-03-08", FormatDate(DateOnly(stamp)))
	assert.Equal(t, DateOnly(stamp), DateOnly(stamp.UTC()))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "alice", 10)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	uid, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)

	_, err = ParseAccessToken("other-secret", tok.Token)
	assert.Error(t, err)

	_, err = ParseAccessToken("secret", "not.a.token")
	assert.Error(t, err)
}
