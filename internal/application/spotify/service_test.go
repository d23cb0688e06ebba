package spotify

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roomDomain "tunemates/internal/domain/room"
	songDomain "tunemates/internal/domain/song"
	userDomain "tunemates/internal/domain/user"
	"tunemates/internal/infrastructure/crypto"
	"tunemates/internal/infrastructure/spotify"
	sharedConfig "tunemates/internal/shared/config"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

type mockStateStore struct {
	states map[string]*spotify.StateRecord
	saved  []*spotify.StateRecord
}

func newMockStateStore() *mockStateStore {
	return &mockStateStore{states: make(map[string]*spotify.StateRecord)}
}

func (m *mockStateStore) Save(ctx context.Context, rec *spotify.StateRecord) error {
	m.states[rec.State] = rec
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockStateStore) Consume(ctx context.Context, state string) (*spotify.StateRecord, error) {
	rec, ok := m.states[state]
	if !ok {
		return nil, errors.NewNotFoundError("state not found")
	}
	delete(m.states, state)
	return rec, nil
}

func (m *mockStateStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type mockAppTokenStore struct{}

func (mockAppTokenStore) Save(ctx context.Context, rec *spotify.AppTokenRecord) error { return nil }
func (mockAppTokenStore) Latest(ctx context.Context) (*spotify.AppTokenRecord, error) {
	return nil, nil
}
func (mockAppTokenStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type mockUserRepo struct {
	users map[uint]*userDomain.User
}

func (m *mockUserRepo) Create(ctx context.Context, u *userDomain.User) error { return nil }

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*userDomain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*userDomain.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *userDomain.User) error { return nil }
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error            { return nil }

type mockRoomRepo struct{}

func (mockRoomRepo) Create(ctx context.Context, r *roomDomain.Room) error { return nil }
func (mockRoomRepo) FindByID(ctx context.Context, id uint) (*roomDomain.Room, error) {
	return nil, errors.NewNotFoundError("room not found")
}
func (mockRoomRepo) FindBySlug(ctx context.Context, slug string) (*roomDomain.Room, error) {
	return nil, errors.NewNotFoundError("room not found")
}
func (mockRoomRepo) FindByOwner(ctx context.Context, ownerID uint) ([]*roomDomain.Room, error) {
	return nil, nil
}
func (mockRoomRepo) CountByOwner(ctx context.Context, ownerID uint) (int64, error) { return 0, nil }
func (mockRoomRepo) ExistsByOwnerAndName(ctx context.Context, ownerID uint, name string) (bool, error) {
	return false, nil
}
func (mockRoomRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) { return false, nil }
func (mockRoomRepo) Update(ctx context.Context, r *roomDomain.Room) error        { return nil }
func (mockRoomRepo) Delete(ctx context.Context, id uint) error                   { return nil }
func (mockRoomRepo) DeactivateIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}
func (mockRoomRepo) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type mockSongRepo struct {
	songs map[uint]*songDomain.Song
}

func (m *mockSongRepo) Create(ctx context.Context, s *songDomain.Song) error { return nil }

func (m *mockSongRepo) FindByID(ctx context.Context, id uint) (*songDomain.Song, error) {
	s, ok := m.songs[id]
	if !ok {
		return nil, errors.NewNotFoundError("song not found")
	}
	return s, nil
}

func (m *mockSongRepo) FindByRoom(ctx context.Context, roomID uint) ([]*songDomain.Song, error) {
	return nil, nil
}

func (m *mockSongRepo) FindByRoomAndStatus(ctx context.Context, roomID uint, status songDomain.Status) ([]*songDomain.Song, error) {
	return nil, nil
}

func (m *mockSongRepo) ExistsByRoomAndTrack(ctx context.Context, roomID uint, trackID string) (bool, error) {
	return false, nil
}

func (m *mockSongRepo) Update(ctx context.Context, s *songDomain.Song) error { return nil }
func (m *mockSongRepo) Delete(ctx context.Context, id uint) error            { return nil }
func (m *mockSongRepo) RefusePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}
func (m *mockSongRepo) DeleteAddedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type testDeps struct {
	states *mockStateStore
	users  *mockUserRepo
	songs  *mockSongRepo
}

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()

	cfg := &sharedConfig.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/api/spotify/callback",
		Market:       "CH",
	}

	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	encryptor, err := crypto.NewEncryptor(key)
	require.NoError(t, err)

	log := logger.NewLogger()
	deps := &testDeps{
		states: newMockStateStore(),
		users:  &mockUserRepo{users: make(map[uint]*userDomain.User)},
		songs:  &mockSongRepo{songs: make(map[uint]*songDomain.Song)},
	}

	tokens := spotify.NewTokenManager(cfg, encryptor, mockAppTokenStore{}, deps.users, log)
	client := spotify.NewClient(log)

	svc := NewService(client, tokens, deps.states, deps.users, mockRoomRepo{}, deps.songs, log)
	return svc, deps
}

func testRoom(t *testing.T, id uint, playlistID string) *roomDomain.Room {
	t.Helper()
	r, err := roomDomain.NewRoom(1, "Friday Night", "friday-night", "hash", "CH")
	require.NoError(t, err)
	r.SetID(id)
	if playlistID != "" {
		r.LinkPlaylist(playlistID)
	}
	return r
}

func pendingSong(t *testing.T, id, roomID uint) *songDomain.Song {
	t.Helper()
	s, err := songDomain.NewSong(roomID, songDomain.TrackInfo{
		TrackID: "4cOdK2wGLETKBW3PvgPWqT",
		Title:   "Test Song",
		URI:     "spotify:track:4cOdK2wGLETKBW3PvgPWqT",
	})
	require.NoError(t, err)
	s.SetID(id)
	return s
}

func TestAuthorizeLink(t *testing.T) {
	svc, deps := newTestService(t)

	resp, err := svc.AuthorizeLink(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, deps.states.saved, 1)
	rec := deps.states.saved[0]
	assert.Equal(t, uint(42), rec.UserID)
	assert.Len(t, rec.State, 32)

	assert.Contains(t, resp.URL, "accounts.spotify.com/authorize")
	assert.Contains(t, resp.URL, "client_id=client-id")
	assert.Contains(t, resp.URL, "state="+rec.State)
}

func TestAuthorizeLinkStatesAreUnique(t *testing.T) {
	svc, deps := newTestService(t)

	_, err := svc.AuthorizeLink(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.AuthorizeLink(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, deps.states.saved, 2)
	assert.NotEqual(t, deps.states.saved[0].State, deps.states.saved[1].State)
}

func TestHandleCallbackMissingParameters(t *testing.T) {
	svc, _ := newTestService(t)

	for _, tc := range []struct{ state, code string }{
		{"", "code"},
		{"state", ""},
		{"", ""},
	} {
		err := svc.HandleCallback(context.Background(), tc.state, tc.code)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	}
}

func TestHandleCallbackUnknownState(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.HandleCallback(context.Background(), "never-issued", "code")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestHandleCallbackStateIsSingleUse(t *testing.T) {
	svc, deps := newTestService(t)

	_, err := svc.AuthorizeLink(context.Background(), 42)
	require.NoError(t, err)
	state := deps.states.saved[0].State

	// First consume removes the state even though the user lookup fails,
	// so a replay reads as an unknown state.
	err = svc.HandleCallback(context.Background(), state, "code")
	require.Error(t, err)
	assert.False(t, errors.IsUnauthorizedError(err))

	err = svc.HandleCallback(context.Background(), state, "code")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestOwnerTokenWithoutLink(t *testing.T) {
	svc, deps := newTestService(t)

	u, err := userDomain.ReconstructUser(
		1, "alex", "alex@example.com", "hash",
		"", "", nil, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	deps.users.users[1] = u

	_, err = svc.OwnerToken(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsSpotifyAuthRequired(err))
}

func TestApproveSongFromOtherRoom(t *testing.T) {
	svc, deps := newTestService(t)
	deps.songs.songs[5] = pendingSong(t, 5, 99)

	_, err := svc.Approve(context.Background(), testRoom(t, 1, "playlist-id"), 5)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestApproveNonPendingSong(t *testing.T) {
	svc, deps := newTestService(t)

	s := pendingSong(t, 5, 1)
	require.NoError(t, s.Refuse())
	deps.songs.songs[5] = s

	_, err := svc.Approve(context.Background(), testRoom(t, 1, "playlist-id"), 5)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestApproveWithoutLinkedPlaylist(t *testing.T) {
	svc, deps := newTestService(t)

	s := pendingSong(t, 5, 1)
	deps.songs.songs[5] = s

	_, err := svc.Approve(context.Background(), testRoom(t, 1, ""), 5)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.True(t, strings.Contains(err.Error(), "playlist"))

	// The song must stay pending so the owner can retry after linking.
	assert.Equal(t, songDomain.StatusPending, s.Status())
}

func TestApproveUnlinkedOwner(t *testing.T) {
	svc, deps := newTestService(t)

	s := pendingSong(t, 5, 1)
	deps.songs.songs[5] = s

	owner, err := userDomain.ReconstructUser(
		1, "alex", "alex@example.com", "hash",
		"", "", nil, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	deps.users.users[1] = owner

	_, err = svc.Approve(context.Background(), testRoom(t, 1, "playlist-id"), 5)
	require.Error(t, err)
	assert.True(t, errors.IsSpotifyAuthRequired(err))
	assert.Equal(t, songDomain.StatusPending, s.Status())
}
