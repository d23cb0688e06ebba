package song

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrack() TrackInfo {
	return TrackInfo{
		TrackID: "4cOdK2wGLETKBW3PvgPWqT",
		Title:   "One More Time",
		Artist:  "Daft Punk",
	}
}

func TestNewSong(t *testing.T) {
	s, err := NewSong(3, testTrack())
	require.NoError(t, err)

	assert.Equal(t, uint(3), s.RoomID())
	assert.Equal(t, StatusPending, s.Status())
	assert.Equal(t, "One More Time", s.Track().Title)
	assert.False(t, s.AddedAt().IsZero())
}

func TestNewSongValidation(t *testing.T) {
	_, err := NewSong(0, testTrack())
	assert.Error(t, err)

	_, err = NewSong(3, TrackInfo{})
	assert.ErrorIs(t, err, ErrTrackIDRequired)
}

func TestApprove(t *testing.T) {
	s, err := NewSong(3, testTrack())
	require.NoError(t, err)

	require.NoError(t, s.Approve())
	assert.Equal(t, StatusApproved, s.Status())

	assert.ErrorIs(t, s.Approve(), ErrNotPending)
}

func TestRefuse(t *testing.T) {
	s, err := NewSong(3, testTrack())
	require.NoError(t, err)

	require.NoError(t, s.Refuse())
	assert.Equal(t, StatusRefused, s.Status())

	assert.ErrorIs(t, s.Refuse(), ErrNotPending)
	assert.ErrorIs(t, s.Approve(), ErrNotPending)
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.True(t, StatusRefused.IsValid())
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestReconstructSong(t *testing.T) {
	now := time.Now()
	s, err := ReconstructSong(5, 3, testTrack(), StatusApproved, now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(5), s.ID())
	assert.Equal(t, StatusApproved, s.Status())

	_, err = ReconstructSong(0, 3, testTrack(), StatusPending, now, now)
	assert.Error(t, err)

	_, err = ReconstructSong(5, 3, testTrack(), Status("bogus"), now, now)
	assert.Error(t, err)
}
