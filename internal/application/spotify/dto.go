package spotify

// AuthorizeLinkResponse returns the URL the user must visit to grant access.
type AuthorizeLinkResponse struct {
	URL string `json:"url"`
}

// SearchRequest carries catalog search parameters.
type SearchRequest struct {
	Query  string `form:"q" binding:"required"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
	Market string `form:"market"`
}

// TrackDTO is a catalog search hit.
type TrackDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	AlbumArtURL string `json:"album_art_url,omitempty"`
	DurationMS  int    `json:"duration_ms"`
	Explicit    bool   `json:"explicit"`
	URI         string `json:"uri"`
}

// SearchResponse is a page of catalog hits.
type SearchResponse struct {
	Tracks []TrackDTO `json:"tracks"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// ApproveResponse reports a song pushed onto the linked playlist.
type ApproveResponse struct {
	SongID     uint   `json:"song_id"`
	SnapshotID string `json:"snapshot_id"`
}

// PlaylistDTO is a playlist summary for the owner's picker.
type PlaylistDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Public     bool   `json:"public"`
	TrackCount int    `json:"track_count"`
}

// TokenResponse hands the owner a short-lived access token for direct
// client-side calls.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
