package user

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	assert.Equal(t, "alex", u.Username())
	assert.Equal(t, "alex@example.com", u.Email())
	assert.False(t, u.HasSpotifyLink())
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		hash     string
	}{
		{"empty username", "", "alex@example.com", "hash"},
		{"username too long", strings.Repeat("a", constants.MaxUsernameLength+1), "alex@example.com", "hash"},
		{"empty email", "alex", "", "hash"},
		{"empty hash", "alex", "alex@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.email, tt.hash)
			assert.Error(t, err)
		})
	}
}

func TestLinkSpotify(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	expiry := biztime.NowUTC().Add(time.Hour)
	require.NoError(t, u.LinkSpotify("refresh-token", "access-token", expiry))

	assert.True(t, u.HasSpotifyLink())
	assert.Equal(t, "refresh-token", u.SpotifyRefreshToken())
	assert.True(t, u.SpotifyTokenValid(biztime.NowUTC()))
}

func TestLinkSpotifyRequiresRefreshToken(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	err = u.LinkSpotify("", "access-token", biztime.NowUTC().Add(time.Hour))
	assert.ErrorIs(t, err, ErrRefreshTokenRequired)
}

func TestSpotifyTokenValidRespectsMargin(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	now := biztime.NowUTC()

	// Expiry inside the refresh margin counts as invalid.
	require.NoError(t, u.LinkSpotify("refresh-token", "access-token", now.Add(constants.TokenRefreshMargin/2)))
	assert.False(t, u.SpotifyTokenValid(now))

	require.NoError(t, u.LinkSpotify("refresh-token", "access-token", now.Add(time.Hour)))
	assert.True(t, u.SpotifyTokenValid(now))
}

func TestUpdateSpotifyAccessToken(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	expiry := biztime.NowUTC().Add(time.Hour)
	require.NoError(t, u.LinkSpotify("refresh-token", "old-access", expiry))

	// No rotation keeps the existing refresh token.
	u.UpdateSpotifyAccessToken("new-access", expiry, "")
	assert.Equal(t, "new-access", u.SpotifyAccessToken())
	assert.Equal(t, "refresh-token", u.SpotifyRefreshToken())

	u.UpdateSpotifyAccessToken("newer-access", expiry, "rotated-refresh")
	assert.Equal(t, "rotated-refresh", u.SpotifyRefreshToken())
}

func TestUnlinkSpotify(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, u.LinkSpotify("refresh-token", "access-token", biztime.NowUTC().Add(time.Hour)))
	u.UnlinkSpotify()

	assert.False(t, u.HasSpotifyLink())
	assert.Empty(t, u.SpotifyAccessToken())
	assert.Nil(t, u.SpotifyTokenExpiry())
}

func TestRename(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, u.Rename("sam"))
	assert.Equal(t, "sam", u.Username())

	assert.ErrorIs(t, u.Rename(""), ErrUsernameRequired)
	assert.ErrorIs(t, u.Rename(strings.Repeat("a", constants.MaxUsernameLength+1)), ErrUsernameTooLong)
}

func TestChangePassword(t *testing.T) {
	u, err := NewUser("alex", "alex@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, u.ChangePassword("new-hash"))
	assert.Equal(t, "new-hash", u.PasswordHash())

	assert.Error(t, u.ChangePassword(""))
}
