package user

import "time"

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed bearer token and the user profile.
type LoginResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UpdateProfileRequest carries the editable profile fields. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,max=32"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest carries a password rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// DeleteRequest confirms account deletion with the current password.
type DeleteRequest struct {
	Password string `json:"password" binding:"required"`
}

// UserDTO is the outward representation of a user. Token material never
// appears here.
type UserDTO struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	SpotifyLinked bool      `json:"spotify_linked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
