package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func TestGetTrack(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/tracks/"+sampleTrackID, r.URL.Path)

		json.NewEncoder(w).Encode(Track{
			ID:         sampleTrackID,
			Name:       "Song Title",
			Artists:    []Artist{{Name: "Artist Name"}},
			DurationMS: 180000,
			URI:        "spotify:track:" + sampleTrackID,
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testLogger(), server.URL)

	track, err := client.GetTrack(context.Background(), "app-token", sampleTrackID)
	require.NoError(t, err)

	assert.Equal(t, "Bearer app-token", gotAuth)
	assert.Equal(t, sampleTrackID, track.ID)
	assert.Equal(t, "Song Title", track.Name)
	assert.Equal(t, "Artist Name", track.PrimaryArtist())
}

func TestGetTrackUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testLogger(), server.URL)

	_, err := client.GetTrack(context.Background(), "stale-token", sampleTrackID)
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.Equal(t, errors.ErrorTypeSpotifyAuthRequired, appErr.Type)
}

func TestRateLimitedRetriesOnce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(Track{ID: sampleTrackID})
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testLogger(), server.URL)

	track, err := client.GetTrack(context.Background(), "app-token", sampleTrackID)
	require.NoError(t, err)
	assert.Equal(t, sampleTrackID, track.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRateLimitedLongRetryAfterFails(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testLogger(), server.URL)

	_, err := client.GetTrack(context.Background(), "app-token", sampleTrackID)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchTracksClampsParameters(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		market     string
		wantLimit  string
		wantOffset string
	}{
		{"limit above cap", 500, 0, "", "50", "0"},
		{"limit below floor", 0, 0, "", "20", "0"},
		{"negative offset", 10, -5, "CH", "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = map[string]string{
					"q":      r.URL.Query().Get("q"),
					"type":   r.URL.Query().Get("type"),
					"limit":  r.URL.Query().Get("limit"),
					"offset": r.URL.Query().Get("offset"),
					"market": r.URL.Query().Get("market"),
				}
				json.NewEncoder(w).Encode(SearchResult{})
			}))
			defer server.Close()

			client := NewClientWithBaseURL(testLogger(), server.URL)

			_, err := client.SearchTracks(context.Background(), "token", "query", tt.limit, tt.offset, tt.market)
			require.NoError(t, err)

			assert.Equal(t, "query", gotQuery["q"])
			assert.Equal(t, "track", gotQuery["type"])
			assert.Equal(t, tt.wantLimit, gotQuery["limit"])
			assert.Equal(t, tt.wantOffset, gotQuery["offset"])
			assert.Equal(t, tt.market, gotQuery["market"])
		})
	}
}

func TestAddToPlaylist(t *testing.T) {
	playlistID := "37i9dQZF1DXcBWIGoYBM5M"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/playlists/"+playlistID+"/tracks", r.URL.Path)

		var body struct {
			URIs     []string `json:"uris"`
			Position int      `json:"position"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"spotify:track:" + sampleTrackID}, body.URIs)
		assert.Equal(t, 0, body.Position)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SnapshotResponse{SnapshotID: "snap-1"})
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testLogger(), server.URL)

	snapshot, err := client.AddToPlaylist(context.Background(), "user-token", playlistID, TrackURI(sampleTrackID))
	require.NoError(t, err)
	assert.Equal(t, "snap-1", snapshot)
}

func TestUserPlaylists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/playlists", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(PaginatedPlaylists{
			Items: []Playlist{{ID: "pl1", Name: "Party Mix"}},
			Total: 1,
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL(testLogger(), server.URL)

	playlists, err := client.UserPlaylists(context.Background(), "user-token", "alice", 0, 0)
	require.NoError(t, err)
	require.Len(t, playlists.Items, 1)
	assert.Equal(t, "Party Mix", playlists.Items[0].Name)
	assert.Equal(t, 1, playlists.Total)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, int64(0), int64(parseRetryAfter("")))
	assert.Equal(t, int64(0), int64(parseRetryAfter("soon")))
	assert.Equal(t, int64(0), int64(parseRetryAfter("-3")))
	assert.Equal(t, "5s", parseRetryAfter(strconv.Itoa(5)).String())
}
