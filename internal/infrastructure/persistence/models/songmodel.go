package models

import (
	"time"

	"gorm.io/datatypes"

	"tunemates/internal/shared/constants"
)

// SongModel represents the database persistence model for proposed songs
type SongModel struct {
	ID          uint   `gorm:"primarykey"`
	RoomID      uint   `gorm:"not null;index:idx_songs_room;uniqueIndex:idx_songs_room_track,priority:1"`
	TrackID     string `gorm:"not null;size:64;uniqueIndex:idx_songs_room_track,priority:2"`
	Title       string `gorm:"size:255"`
	Artist      string `gorm:"size:255"`
	Album       string `gorm:"size:255"`
	AlbumArtURL string `gorm:"size:500"`
	DurationMS  int
	Explicit    bool
	URI         string         `gorm:"size:128"`
	RawPayload  datatypes.JSON `gorm:"type:json"`
	Status      string         `gorm:"not null;default:pending;size:16;index:idx_songs_status"`
	AddedAt     time.Time      `gorm:"index:idx_songs_added"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (SongModel) TableName() string {
	return constants.TableSongs
}
