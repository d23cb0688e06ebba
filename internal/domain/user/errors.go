package user

import "errors"

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameRequired is returned when the username is empty
	ErrUsernameRequired = errors.New("username is required")

	// ErrUsernameTooLong is returned when the username exceeds the limit
	ErrUsernameTooLong = errors.New("username too long")

	// ErrEmailRequired is returned when the email is empty
	ErrEmailRequired = errors.New("email is required")

	// ErrEmailTaken is returned when the email is already registered
	ErrEmailTaken = errors.New("email already registered")

	// ErrRefreshTokenRequired is returned when linking without a refresh token
	ErrRefreshTokenRequired = errors.New("refresh token is required")
)
