package spotify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrackID = "4cOdK2wGLETKBW3PvgPWqT"

func TestNormalizeTrackID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare id",
			input: sampleTrackID,
			want:  sampleTrackID,
		},
		{
			name:  "bare id with surrounding whitespace",
			input: "  " + sampleTrackID + "  ",
			want:  sampleTrackID,
		},
		{
			name:  "spotify uri",
			input: "spotify:track:" + sampleTrackID,
			want:  sampleTrackID,
		},
		{
			name:  "open spotify url",
			input: "https://open.spotify.com/track/" + sampleTrackID,
			want:  sampleTrackID,
		},
		{
			name:  "open spotify url with query",
			input: "https://open.spotify.com/track/" + sampleTrackID + "?si=abc123",
			want:  sampleTrackID,
		},
		{
			name:  "open spotify url with fragment",
			input: "https://open.spotify.com/track/" + sampleTrackID + "#play",
			want:  sampleTrackID,
		},
		{
			name:  "localized open spotify url",
			input: "https://open.spotify.com/intl-de/track/" + sampleTrackID,
			want:  sampleTrackID,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "id too short",
			input:   "4cOdK2wGLETKBW3",
			wantErr: true,
		},
		{
			name:    "id with invalid characters",
			input:   "4cOdK2wGLETKBW3PvgPWq!",
			wantErr: true,
		},
		{
			name:    "playlist uri is not a track",
			input:   "spotify:playlist:" + sampleTrackID,
			wantErr: true,
		},
		{
			name:    "url without track segment",
			input:   "https://open.spotify.com/album/" + sampleTrackID,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTrackID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePlaylistID(t *testing.T) {
	playlistID := "37i9dQZF1DXcBWIGoYBM5M"

	got, err := NormalizePlaylistID("spotify:playlist:" + playlistID)
	require.NoError(t, err)
	assert.Equal(t, playlistID, got)

	got, err = NormalizePlaylistID("https://open.spotify.com/playlist/" + playlistID + "?si=xyz")
	require.NoError(t, err)
	assert.Equal(t, playlistID, got)

	_, err = NormalizePlaylistID("spotify:track:" + sampleTrackID)
	assert.Error(t, err)
}

func TestTrackURI(t *testing.T) {
	assert.Equal(t, "spotify:track:"+sampleTrackID, TrackURI(sampleTrackID))
}
