package spotify

import (
	"context"
	"time"
)

// AppTokenRecord is a persisted client-credentials token row. The token is
// stored encrypted so restarts can reuse it without another exchange.
type AppTokenRecord struct {
	ID             uint
	EncryptedToken string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// AppTokenStore persists client-credentials tokens.
type AppTokenStore interface {
	// Save persists a new token row
	Save(ctx context.Context, rec *AppTokenRecord) error

	// Latest returns the most recent token row, or nil when none exists
	Latest(ctx context.Context) (*AppTokenRecord, error)

	// DeleteCreatedBefore removes rows created before the cutoff and
	// returns the affected row count
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// StateRecord is a one-time OAuth state value bound to the user who
// started the authorization flow.
type StateRecord struct {
	ID        uint
	State     string
	UserID    uint
	CreatedAt time.Time
}

// StateStore persists OAuth state values for CSRF checks.
type StateStore interface {
	// Save persists a new state row
	Save(ctx context.Context, rec *StateRecord) error

	// Consume looks up a state value and removes it, returning the row
	Consume(ctx context.Context, state string) (*StateRecord, error)

	// DeleteCreatedBefore removes rows created before the cutoff and
	// returns the affected row count
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
