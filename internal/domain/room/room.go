package room

import (
	"fmt"
	"time"

	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
)

// Room represents a shared playlist room owned by a single user.
// Participants join via the room password or a short-lived share code.
type Room struct {
	id           uint
	ownerID      uint
	name         string
	slug         string
	passwordHash string
	active       bool
	market       string
	playlistID   string
	lastUpdate   time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewRoom creates a new active room.
func NewRoom(ownerID uint, name, slug, passwordHash, market string) (*Room, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID cannot be zero")
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > constants.MaxRoomNameLength {
		return nil, ErrNameTooLong
	}
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if market == "" {
		market = constants.DefaultMarket
	}

	now := biztime.NowUTC()
	return &Room{
		ownerID:      ownerID,
		name:         name,
		slug:         slug,
		passwordHash: passwordHash,
		active:       true,
		market:       market,
		lastUpdate:   now,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructRoom reconstructs a room from persistence.
func ReconstructRoom(
	id uint,
	ownerID uint,
	name string,
	slug string,
	passwordHash string,
	active bool,
	market string,
	playlistID string,
	lastUpdate time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Room, error) {
	if id == 0 {
		return nil, fmt.Errorf("room ID cannot be zero")
	}
	return &Room{
		id:           id,
		ownerID:      ownerID,
		name:         name,
		slug:         slug,
		passwordHash: passwordHash,
		active:       active,
		market:       market,
		playlistID:   playlistID,
		lastUpdate:   lastUpdate,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (r *Room) ID() uint              { return r.id }
func (r *Room) OwnerID() uint         { return r.ownerID }
func (r *Room) Name() string          { return r.name }
func (r *Room) Slug() string          { return r.slug }
func (r *Room) PasswordHash() string  { return r.passwordHash }
func (r *Room) IsActive() bool        { return r.active }
func (r *Room) Market() string        { return r.market }
func (r *Room) PlaylistID() string    { return r.playlistID }
func (r *Room) LastUpdate() time.Time { return r.lastUpdate }
func (r *Room) CreatedAt() time.Time  { return r.createdAt }
func (r *Room) UpdatedAt() time.Time  { return r.updatedAt }

// SetID assigns the persistence-generated identifier after creation.
func (r *Room) SetID(id uint) {
	r.id = id
}

// IsOwnedBy reports whether the given user owns this room.
func (r *Room) IsOwnedBy(userID uint) bool {
	return r.ownerID == userID
}

// HasPlaylist reports whether a Spotify playlist is linked.
func (r *Room) HasPlaylist() bool {
	return r.playlistID != ""
}

// Rename updates the room name.
func (r *Room) Rename(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > constants.MaxRoomNameLength {
		return ErrNameTooLong
	}
	r.name = name
	r.touch()
	return nil
}

// SetSlug replaces the room slug.
func (r *Room) SetSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	r.slug = slug
	r.touch()
	return nil
}

// LinkPlaylist attaches a Spotify playlist to the room.
func (r *Room) LinkPlaylist(playlistID string) {
	r.playlistID = playlistID
	r.touch()
}

// SetActive toggles whether the room accepts proposals.
func (r *Room) SetActive(active bool) {
	r.active = active
	r.touch()
}

// ChangePassword replaces the room password hash.
func (r *Room) ChangePassword(newHash string) error {
	if newHash == "" {
		return fmt.Errorf("password hash is required")
	}
	r.passwordHash = newHash
	r.touch()
	return nil
}

// RecordActivity advances the last-update marker. Sweeps use it to decide
// when a room goes inactive.
func (r *Room) RecordActivity() {
	r.lastUpdate = biztime.NowUTC()
	r.updatedAt = r.lastUpdate
}

func (r *Room) touch() {
	r.updatedAt = biztime.NowUTC()
}
