package models

import (
	"time"

	"tunemates/internal/shared/constants"
)

// AppTokenModel persists the encrypted client-credentials token so restarts
// can reuse a still-valid token instead of exchanging again.
type AppTokenModel struct {
	ID             uint   `gorm:"primarykey"`
	EncryptedToken string `gorm:"not null;size:2048"`
	CreatedAt      time.Time
	ExpiresAt      time.Time `gorm:"index:idx_app_tokens_expires"`
}

// TableName specifies the table name for GORM
func (AppTokenModel) TableName() string {
	return constants.TableAppTokens
}

// SpotifyStateModel persists one-time OAuth state values for CSRF checks.
type SpotifyStateModel struct {
	ID        uint      `gorm:"primarykey"`
	State     string    `gorm:"uniqueIndex;not null;size:64"`
	UserID    uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index:idx_spotify_states_created"`
}

// TableName specifies the table name for GORM
func (SpotifyStateModel) TableName() string {
	return constants.TableSpotifyStates
}
