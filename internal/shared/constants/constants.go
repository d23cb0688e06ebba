// Package constants defines shared constant values used across the application.
package constants

import "time"

// Environment names
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Table names
const (
	TableUsers         = "users"
	TableRooms         = "rooms"
	TableRoomCodes     = "room_codes"
	TableSongs         = "songs"
	TableAppTokens     = "app_tokens"
	TableSpotifyStates = "spotify_states"
)

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyRoom   = "room"
)

// Business limits
const (
	MaxRoomsPerUser   = 10
	MaxUsernameLength = 32
	MaxRoomNameLength = 64
)

// DefaultMarket is the Spotify market used when a room does not set one.
const DefaultMarket = "CH"

// TokenRefreshMargin is the safety window before expiry inside which a
// Spotify token is considered stale and must be refreshed.
const TokenRefreshMargin = time.Minute

// Cleanup cutoffs
const (
	ProposalRefuseAfter   = time.Hour
	ProposalDeleteAfter   = 5 * time.Hour
	RoomInactiveAfter     = 24 * time.Hour
	RoomDeleteAfter       = 30 * 24 * time.Hour
	RoomCodeTTL           = 6 * time.Hour
	SpotifyStateTTL       = time.Hour
	AppTokenDeleteAfter   = 6 * time.Hour
	DefaultSweepInterval  = 3 * time.Hour
	SweepExecutionTimeout = 5 * time.Minute
)
