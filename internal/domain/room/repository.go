package room

import (
	"context"
	"time"
)

// Repository defines the interface for room persistence
type Repository interface {
	// Create persists a new room and assigns its ID
	Create(ctx context.Context, r *Room) error

	// FindByID retrieves a room by numeric ID
	FindByID(ctx context.Context, id uint) (*Room, error)

	// FindBySlug retrieves a room by slug
	FindBySlug(ctx context.Context, slug string) (*Room, error)

	// FindByOwner retrieves all rooms owned by a user
	FindByOwner(ctx context.Context, ownerID uint) ([]*Room, error)

	// CountByOwner returns the number of rooms owned by a user
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)

	// ExistsByOwnerAndName reports whether the owner already has a room by
	// that name
	ExistsByOwnerAndName(ctx context.Context, ownerID uint, name string) (bool, error)

	// ExistsBySlug reports whether a room with the slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Update persists changes to an existing room
	Update(ctx context.Context, r *Room) error

	// Delete removes a room and its dependent rows
	Delete(ctx context.Context, id uint) error

	// DeactivateIdleBefore marks active rooms idle since the cutoff as
	// inactive and returns the affected row count
	DeactivateIdleBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteInactiveBefore removes inactive rooms idle since the cutoff and
	// returns the affected row count
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CodeRepository defines the interface for share code persistence
type CodeRepository interface {
	// Create persists a new share code and assigns its ID
	Create(ctx context.Context, c *Code) error

	// FindByValue retrieves a code by its value
	FindByValue(ctx context.Context, value string) (*Code, error)

	// FindByRoom retrieves all codes issued for a room
	FindByRoom(ctx context.Context, roomID uint) ([]*Code, error)

	// Delete removes a share code
	Delete(ctx context.Context, id uint) error

	// DeleteExpiredBefore removes codes expired before the cutoff and
	// returns the affected row count
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
