package song

import "time"

// ProposeRequest proposes a track to a room. Track accepts a bare Spotify
// ID, a spotify:track: URI, or an open.spotify.com URL.
type ProposeRequest struct {
	Track string `json:"track" binding:"required"`
}

// SongDTO is the outward representation of a proposed song.
type SongDTO struct {
	ID          uint      `json:"id"`
	RoomID      uint      `json:"room_id"`
	TrackID     string    `json:"track_id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Album       string    `json:"album"`
	AlbumArtURL string    `json:"album_art_url,omitempty"`
	DurationMS  int       `json:"duration_ms"`
	Explicit    bool      `json:"explicit"`
	URI         string    `json:"uri"`
	Status      string    `json:"status"`
	AddedAt     time.Time `json:"added_at"`
}
