package user

import "context"

// Repository defines the interface for user persistence
type Repository interface {
	// Create persists a new user and assigns its ID
	Create(ctx context.Context, u *User) error

	// FindByID retrieves a user by numeric ID
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail retrieves a user by email address
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List retrieves a page of users and the total count
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)

	// Update persists changes to an existing user
	Update(ctx context.Context, u *User) error

	// Delete removes a user
	Delete(ctx context.Context, id uint) error
}
