package room

import "errors"

var (
	// ErrRoomNotFound is returned when a room is not found
	ErrRoomNotFound = errors.New("room not found")

	// ErrNameRequired is returned when the room name is empty
	ErrNameRequired = errors.New("room name is required")

	// ErrNameTooLong is returned when the room name exceeds the limit
	ErrNameTooLong = errors.New("room name too long")

	// ErrNameTaken is returned when the owner already has a room by that name
	ErrNameTaken = errors.New("room name already in use")

	// ErrRoomLimitReached is returned when the owner hit the room quota
	ErrRoomLimitReached = errors.New("room limit reached")

	// ErrRoomInactive is returned when an operation requires an active room
	ErrRoomInactive = errors.New("room is not active")

	// ErrCodeNotFound is returned when a share code is unknown or expired
	ErrCodeNotFound = errors.New("room code not found")

	// ErrNoPlaylist is returned when the room has no linked Spotify playlist
	ErrNoPlaylist = errors.New("room has no linked playlist")
)
