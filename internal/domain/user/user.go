package user

import (
	"fmt"
	"time"

	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
)

// User represents a registered account. Spotify authorization state is
// carried alongside because playlist operations act on the owner's behalf.
type User struct {
	id        uint
	username  string
	email     string
	createdAt time.Time
	updatedAt time.Time

	passwordHash string

	// Delegated Spotify authorization. Empty refresh token means the
	// user has never linked their account.
	spotifyRefreshToken string
	spotifyAccessToken  string
	spotifyTokenExpiry  *time.Time
}

// NewUser creates a new user with a hashed password.
func NewUser(username, email, passwordHash string) (*User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > constants.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := biztime.NowUTC()
	return &User{
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	id uint,
	username string,
	email string,
	passwordHash string,
	spotifyRefreshToken string,
	spotifyAccessToken string,
	spotifyTokenExpiry *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:                  id,
		username:            username,
		email:               email,
		passwordHash:        passwordHash,
		spotifyRefreshToken: spotifyRefreshToken,
		spotifyAccessToken:  spotifyAccessToken,
		spotifyTokenExpiry:  spotifyTokenExpiry,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (u *User) ID() uint                    { return u.id }
func (u *User) Username() string            { return u.username }
func (u *User) Email() string               { return u.email }
func (u *User) PasswordHash() string        { return u.passwordHash }
func (u *User) SpotifyRefreshToken() string { return u.spotifyRefreshToken }
func (u *User) SpotifyAccessToken() string  { return u.spotifyAccessToken }
func (u *User) SpotifyTokenExpiry() *time.Time {
	return u.spotifyTokenExpiry
}
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// SetID assigns the persistence-generated identifier after creation.
func (u *User) SetID(id uint) {
	u.id = id
}

// HasSpotifyLink reports whether the user has completed the Spotify
// authorization flow at least once.
func (u *User) HasSpotifyLink() bool {
	return u.spotifyRefreshToken != ""
}

// SpotifyTokenValid reports whether the stored access token can still be
// used, keeping a safety margin before the actual expiry.
func (u *User) SpotifyTokenValid(now time.Time) bool {
	if u.spotifyAccessToken == "" || u.spotifyTokenExpiry == nil {
		return false
	}
	return u.spotifyTokenExpiry.After(now.Add(constants.TokenRefreshMargin))
}

// LinkSpotify stores a fresh delegated authorization grant.
func (u *User) LinkSpotify(refreshToken, accessToken string, expiry time.Time) error {
	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}
	u.spotifyRefreshToken = refreshToken
	u.spotifyAccessToken = accessToken
	u.spotifyTokenExpiry = &expiry
	u.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateSpotifyAccessToken replaces the short-lived access token after a
// refresh. A rotated refresh token is stored when Spotify returns one.
func (u *User) UpdateSpotifyAccessToken(accessToken string, expiry time.Time, rotatedRefreshToken string) {
	u.spotifyAccessToken = accessToken
	u.spotifyTokenExpiry = &expiry
	if rotatedRefreshToken != "" {
		u.spotifyRefreshToken = rotatedRefreshToken
	}
	u.updatedAt = biztime.NowUTC()
}

// UnlinkSpotify removes the delegated authorization.
func (u *User) UnlinkSpotify() {
	u.spotifyRefreshToken = ""
	u.spotifyAccessToken = ""
	u.spotifyTokenExpiry = nil
	u.updatedAt = biztime.NowUTC()
}

// ChangePassword replaces the stored password hash.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = newHash
	u.updatedAt = biztime.NowUTC()
	return nil
}

// Rename updates the display name.
func (u *User) Rename(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) > constants.MaxUsernameLength {
		return ErrUsernameTooLong
	}
	u.username = username
	u.updatedAt = biztime.NowUTC()
	return nil
}
