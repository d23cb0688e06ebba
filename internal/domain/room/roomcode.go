package room

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
)

// Code is a short-lived share code that lets a participant join a room
// without knowing the room password.
type Code struct {
	id        uint
	roomID    uint
	value     string
	createdAt time.Time
	expiresAt time.Time
}

// NewCode issues a fresh random code for a room.
func NewCode(roomID uint) (*Code, error) {
	if roomID == 0 {
		return nil, fmt.Errorf("room ID cannot be zero")
	}

	value, err := generateCodeValue()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	now := biztime.NowUTC()
	return &Code{
		roomID:    roomID,
		value:     value,
		createdAt: now,
		expiresAt: now.Add(constants.RoomCodeTTL),
	}, nil
}

// ReconstructCode reconstructs a share code from persistence.
func ReconstructCode(id, roomID uint, value string, createdAt, expiresAt time.Time) (*Code, error) {
	if id == 0 {
		return nil, fmt.Errorf("code ID cannot be zero")
	}
	return &Code{
		id:        id,
		roomID:    roomID,
		value:     value,
		createdAt: createdAt,
		expiresAt: expiresAt,
	}, nil
}

func (c *Code) ID() uint             { return c.id }
func (c *Code) RoomID() uint         { return c.roomID }
func (c *Code) Value() string        { return c.value }
func (c *Code) CreatedAt() time.Time { return c.createdAt }
func (c *Code) ExpiresAt() time.Time { return c.expiresAt }

// SetID assigns the persistence-generated identifier after creation.
func (c *Code) SetID(id uint) {
	c.id = id
}

// IsExpired reports whether the code is past its expiry.
func (c *Code) IsExpired(now time.Time) bool {
	return now.After(c.expiresAt)
}

// generateCodeValue produces an 8-character uppercase code from 5 random
// bytes, dropping base32 padding.
func generateCodeValue() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)), nil
}
