package spotify

import (
	"regexp"
	"strings"

	"tunemates/internal/shared/errors"
)

var idPattern = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)

// NormalizeTrackID extracts the bare track ID from any of the accepted
// forms: a bare ID, a spotify:track: URI, or an open.spotify.com URL.
func NormalizeTrackID(input string) (string, error) {
	return normalizeID(input, "track")
}

// NormalizePlaylistID extracts the bare playlist ID from a bare ID, a
// spotify:playlist: URI, or an open.spotify.com URL.
func NormalizePlaylistID(input string) (string, error) {
	return normalizeID(input, "playlist")
}

func normalizeID(input, kind string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errors.NewValidationError(kind + " ID is required")
	}

	if strings.HasPrefix(s, "spotify:"+kind+":") {
		s = strings.TrimPrefix(s, "spotify:"+kind+":")
	} else if strings.Contains(s, "open.spotify.com/") {
		idx := strings.Index(s, kind+"/")
		if idx < 0 {
			return "", errors.NewValidationError("invalid spotify " + kind + " URL")
		}
		s = s[idx+len(kind)+1:]
		if q := strings.IndexAny(s, "?/#"); q >= 0 {
			s = s[:q]
		}
	}

	if !idPattern.MatchString(s) {
		return "", errors.NewValidationError("invalid spotify " + kind + " ID")
	}
	return s, nil
}

// TrackURI builds a spotify:track: URI from a bare ID.
func TrackURI(trackID string) string {
	return "spotify:track:" + trackID
}
