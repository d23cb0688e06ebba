package models

import (
	"time"

	"tunemates/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"not null;size:32"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`

	// Spotify tokens are stored AES-GCM encrypted
	SpotifyRefreshToken string `gorm:"size:1024"`
	SpotifyAccessToken  string `gorm:"size:1024"`
	SpotifyTokenExpiry  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
