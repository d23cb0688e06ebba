package song

import "errors"

var (
	// ErrSongNotFound is returned when a song is not found
	ErrSongNotFound = errors.New("song not found")

	// ErrTrackIDRequired is returned when the Spotify track ID is empty
	ErrTrackIDRequired = errors.New("track ID is required")

	// ErrDuplicateTrack is returned when the track was already proposed to
	// the room
	ErrDuplicateTrack = errors.New("track already proposed to this room")

	// ErrNotPending is returned when a status transition needs a pending song
	ErrNotPending = errors.New("song is not pending")
)
