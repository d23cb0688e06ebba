package song

import (
	"context"
	"time"
)

// Repository defines the interface for song persistence
type Repository interface {
	// Create persists a new song and assigns its ID
	Create(ctx context.Context, s *Song) error

	// FindByID retrieves a song by numeric ID
	FindByID(ctx context.Context, id uint) (*Song, error)

	// FindByRoom retrieves all songs proposed to a room
	FindByRoom(ctx context.Context, roomID uint) ([]*Song, error)

	// FindByRoomAndStatus retrieves songs in a room filtered by status
	FindByRoomAndStatus(ctx context.Context, roomID uint, status Status) ([]*Song, error)

	// ExistsByRoomAndTrack reports whether the track was already proposed to
	// the room
	ExistsByRoomAndTrack(ctx context.Context, roomID uint, trackID string) (bool, error)

	// Update persists changes to an existing song
	Update(ctx context.Context, s *Song) error

	// Delete removes a song
	Delete(ctx context.Context, id uint) error

	// RefusePendingBefore marks pending songs added before the cutoff as
	// refused and returns the affected row count
	RefusePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteAddedBefore removes non-approved songs added before the cutoff
	// and returns the affected row count
	DeleteAddedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
