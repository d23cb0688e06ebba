package room

import "time"

// CreateRequest carries room creation fields.
type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	Password string `json:"password" binding:"required,min=4"`
	Market   string `json:"market" binding:"omitempty,len=2"`
}

// UpdateRequest carries the editable room fields. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=64"`
	Slug       *string `json:"slug" binding:"omitempty,max=128"`
	PlaylistID *string `json:"playlist_id"`
	Active     *bool   `json:"active"`
}

// ChangePasswordRequest replaces the room password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=4"`
}

// JoinRequest is the password-gated public lookup by slug.
type JoinRequest struct {
	Password string `json:"password" binding:"required"`
}

// RedeemRequest trades a share code for room access.
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// RoomDTO is the owner-facing representation of a room.
type RoomDTO struct {
	ID         uint      `json:"id"`
	OwnerID    uint      `json:"owner_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Active     bool      `json:"active"`
	Market     string    `json:"market"`
	PlaylistID string    `json:"playlist_id,omitempty"`
	LastUpdate time.Time `json:"last_update"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublicRoomDTO is what participants see after joining. It omits the
// playlist link and ownership detail.
type PublicRoomDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

// CodeDTO is a share code with its expiry.
type CodeDTO struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
