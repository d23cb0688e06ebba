package song

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roomDomain "tunemates/internal/domain/room"
	domain "tunemates/internal/domain/song"
	"tunemates/internal/infrastructure/spotify"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

const testTrackID = "4cOdK2wGLETKBW3PvgPWqT"

type mockSongRepo struct {
	songs   map[uint]*domain.Song
	nextID  uint
	updated *domain.Song
}

func newMockSongRepo() *mockSongRepo {
	return &mockSongRepo{songs: make(map[uint]*domain.Song), nextID: 1}
}

func (m *mockSongRepo) Create(ctx context.Context, s *domain.Song) error {
	s.SetID(m.nextID)
	m.songs[m.nextID] = s
	m.nextID++
	return nil
}

func (m *mockSongRepo) FindByID(ctx context.Context, id uint) (*domain.Song, error) {
	s, ok := m.songs[id]
	if !ok {
		return nil, errors.NewNotFoundError("song not found")
	}
	return s, nil
}

func (m *mockSongRepo) FindByRoom(ctx context.Context, roomID uint) ([]*domain.Song, error) {
	var out []*domain.Song
	for _, s := range m.songs {
		if s.RoomID() == roomID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSongRepo) FindByRoomAndStatus(ctx context.Context, roomID uint, status domain.Status) ([]*domain.Song, error) {
	var out []*domain.Song
	for _, s := range m.songs {
		if s.RoomID() == roomID && s.Status() == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSongRepo) ExistsByRoomAndTrack(ctx context.Context, roomID uint, trackID string) (bool, error) {
	for _, s := range m.songs {
		if s.RoomID() == roomID && s.Track().TrackID == trackID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSongRepo) Update(ctx context.Context, s *domain.Song) error {
	m.songs[s.ID()] = s
	m.updated = s
	return nil
}

func (m *mockSongRepo) Delete(ctx context.Context, id uint) error {
	delete(m.songs, id)
	return nil
}

func (m *mockSongRepo) RefusePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *mockSongRepo) DeleteAddedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type mockRoomRepo struct {
	rooms       map[uint]*roomDomain.Room
	lastUpdated *roomDomain.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[uint]*roomDomain.Room)}
}

func (m *mockRoomRepo) Create(ctx context.Context, r *roomDomain.Room) error { return nil }

func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*roomDomain.Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, errors.NewNotFoundError("room not found")
	}
	return r, nil
}

func (m *mockRoomRepo) FindBySlug(ctx context.Context, slug string) (*roomDomain.Room, error) {
	return nil, errors.NewNotFoundError("room not found")
}

func (m *mockRoomRepo) FindByOwner(ctx context.Context, ownerID uint) ([]*roomDomain.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	return 0, nil
}

func (m *mockRoomRepo) ExistsByOwnerAndName(ctx context.Context, ownerID uint, name string) (bool, error) {
	return false, nil
}

func (m *mockRoomRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return false, nil
}

func (m *mockRoomRepo) Update(ctx context.Context, r *roomDomain.Room) error {
	m.rooms[r.ID()] = r
	m.lastUpdated = r
	return nil
}

func (m *mockRoomRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockRoomRepo) DeactivateIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *mockRoomRepo) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type mockCatalog struct {
	track *spotify.Track
	err   error
	calls int
}

func (m *mockCatalog) GetTrack(ctx context.Context, token, trackID string) (*spotify.Track, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.track, nil
}

type mockTokenProvider struct{}

func (m *mockTokenProvider) AppToken(ctx context.Context) (string, error) {
	return "app-token", nil
}

func catalogTrack() *spotify.Track {
	return &spotify.Track{
		ID:         testTrackID,
		Name:       "Test Song",
		Artists:    []spotify.Artist{{Name: "Test Artist"}},
		Album:      spotify.Album{Name: "Test Album"},
		DurationMS: 210000,
		URI:        "spotify:track:" + testTrackID,
	}
}

func activeRoom(t *testing.T, id uint) *roomDomain.Room {
	t.Helper()
	r, err := roomDomain.NewRoom(1, "Friday Night", "friday-night", "hash", "CH")
	require.NoError(t, err)
	r.SetID(id)
	return r
}

func newTestService(songs *mockSongRepo, rooms *mockRoomRepo, catalog *mockCatalog) *Service {
	return NewService(songs, rooms, catalog, &mockTokenProvider{}, logger.NewLogger())
}

func TestProposeCreatesPendingSong(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	rooms.rooms[1] = activeRoom(t, 1)
	catalog := &mockCatalog{track: catalogTrack()}

	svc := newTestService(songs, rooms, catalog)

	dto, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.NoError(t, err)

	assert.Equal(t, testTrackID, dto.TrackID)
	assert.Equal(t, "Test Song", dto.Title)
	assert.Equal(t, "Test Artist", dto.Artist)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, 1, catalog.calls)
}

func TestProposeAcceptsURIAndURL(t *testing.T) {
	for _, input := range []string{
		"spotify:track:" + testTrackID,
		"https://open.spotify.com/track/" + testTrackID + "?si=share",
	} {
		songs := newMockSongRepo()
		rooms := newMockRoomRepo()
		rooms.rooms[1] = activeRoom(t, 1)

		svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

		dto, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: input})
		require.NoError(t, err, input)
		assert.Equal(t, testTrackID, dto.TrackID)
	}
}

func TestProposeDuplicateTrackConflicts(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	rooms.rooms[1] = activeRoom(t, 1)

	svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

	_, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.NoError(t, err)

	_, err = svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
}

func TestProposeInactiveRoomConflicts(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	r := activeRoom(t, 1)
	r.SetActive(false)
	rooms.rooms[1] = r

	svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

	_, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
}

func TestProposeAdvancesRoomActivity(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	r := activeRoom(t, 1)
	before := r.LastUpdate()
	rooms.rooms[1] = r

	svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

	time.Sleep(5 * time.Millisecond)
	_, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.NoError(t, err)

	require.NotNil(t, rooms.lastUpdated)
	assert.True(t, rooms.lastUpdated.LastUpdate().After(before))
}

func TestProposeInvalidTrackReference(t *testing.T) {
	svc := newTestService(newMockSongRepo(), newMockRoomRepo(), &mockCatalog{})

	_, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: "not-a-track"})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestListByRoomAndStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newMockSongRepo(), newMockRoomRepo(), &mockCatalog{})

	_, err := svc.ListByRoomAndStatus(context.Background(), 1, "archived")
	assert.Error(t, err)
}

func TestRefusePendingSong(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	rooms.rooms[1] = activeRoom(t, 1)

	svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

	dto, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.NoError(t, err)

	refused, err := svc.Refuse(context.Background(), 1, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, "refused", refused.Status)
}

func TestRefuseSongFromOtherRoom(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	rooms.rooms[1] = activeRoom(t, 1)

	svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

	dto, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.NoError(t, err)

	_, err = svc.Refuse(context.Background(), 2, dto.ID)
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
}

func TestRefuseRefusedSongConflicts(t *testing.T) {
	songs := newMockSongRepo()
	rooms := newMockRoomRepo()
	rooms.rooms[1] = activeRoom(t, 1)

	svc := newTestService(songs, rooms, &mockCatalog{track: catalogTrack()})

	dto, err := svc.Propose(context.Background(), 1, ProposeRequest{Track: testTrackID})
	require.NoError(t, err)

	_, err = svc.Refuse(context.Background(), 1, dto.ID)
	require.NoError(t, err)

	_, err = svc.Refuse(context.Background(), 1, dto.ID)
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
}
