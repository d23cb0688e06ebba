package models

import (
	"time"

	"tunemates/internal/shared/constants"
)

// RoomModel represents the database persistence model for rooms
type RoomModel struct {
	ID           uint   `gorm:"primarykey"`
	OwnerID      uint   `gorm:"not null;index:idx_rooms_owner"`
	Name         string `gorm:"not null;size:64"`
	Slug         string `gorm:"uniqueIndex;not null;size:128"`
	PasswordHash string `gorm:"not null;size:255"`
	Active       bool   `gorm:"not null;default:true;index:idx_rooms_active"`
	Market       string `gorm:"size:2"`
	PlaylistID   string `gorm:"size:64"`
	LastUpdate   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (RoomModel) TableName() string {
	return constants.TableRooms
}

// RoomCodeModel represents the database persistence model for share codes
type RoomCodeModel struct {
	ID        uint   `gorm:"primarykey"`
	RoomID    uint   `gorm:"not null;index:idx_room_codes_room"`
	Code      string `gorm:"uniqueIndex;not null;size:16"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index:idx_room_codes_expires"`
}

// TableName specifies the table name for GORM
func (RoomCodeModel) TableName() string {
	return constants.TableRoomCodes
}
