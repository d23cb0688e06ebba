package song

import (
	"fmt"
	"time"

	"tunemates/internal/shared/biztime"
)

// Status is the lifecycle state of a proposed song.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRefused  Status = "refused"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRefused:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// TrackInfo carries the Spotify catalog metadata captured at proposal time.
type TrackInfo struct {
	TrackID     string
	Title       string
	Artist      string
	Album       string
	AlbumArtURL string
	DurationMS  int
	Explicit    bool
	URI         string
	RawPayload  []byte
}

// Song represents a song proposed to a room. It starts pending and the room
// owner either approves it onto the linked playlist or refuses it.
type Song struct {
	id     uint
	roomID uint
	track  TrackInfo
	status Status

	addedAt   time.Time
	updatedAt time.Time
}

// NewSong creates a pending proposal for a room.
func NewSong(roomID uint, track TrackInfo) (*Song, error) {
	if roomID == 0 {
		return nil, fmt.Errorf("room ID cannot be zero")
	}
	if track.TrackID == "" {
		return nil, ErrTrackIDRequired
	}

	now := biztime.NowUTC()
	return &Song{
		roomID:    roomID,
		track:     track,
		status:    StatusPending,
		addedAt:   now,
		updatedAt: now,
	}, nil
}

// ReconstructSong reconstructs a song from persistence.
func ReconstructSong(id, roomID uint, track TrackInfo, status Status, addedAt, updatedAt time.Time) (*Song, error) {
	if id == 0 {
		return nil, fmt.Errorf("song ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid song status: %s", status)
	}
	return &Song{
		id:        id,
		roomID:    roomID,
		track:     track,
		status:    status,
		addedAt:   addedAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Song) ID() uint             { return s.id }
func (s *Song) RoomID() uint         { return s.roomID }
func (s *Song) Track() TrackInfo     { return s.track }
func (s *Song) Status() Status       { return s.status }
func (s *Song) AddedAt() time.Time   { return s.addedAt }
func (s *Song) UpdatedAt() time.Time { return s.updatedAt }

// SetID assigns the persistence-generated identifier after creation.
func (s *Song) SetID(id uint) {
	s.id = id
}

// Approve transitions a pending song to approved.
func (s *Song) Approve() error {
	if s.status != StatusPending {
		return ErrNotPending
	}
	s.status = StatusApproved
	s.updatedAt = biztime.NowUTC()
	return nil
}

// Refuse transitions a pending song to refused.
func (s *Song) Refuse() error {
	if s.status != StatusPending {
		return ErrNotPending
	}
	s.status = StatusRefused
	s.updatedAt = biztime.NowUTC()
	return nil
}
