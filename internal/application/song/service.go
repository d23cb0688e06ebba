package song

import (
	"context"
	"encoding/json"

	roomDomain "tunemates/internal/domain/room"
	domain "tunemates/internal/domain/song"
	"tunemates/internal/infrastructure/spotify"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

// AppTokenProvider supplies a valid app-scoped Spotify token.
type AppTokenProvider interface {
	AppToken(ctx context.Context) (string, error)
}

// CatalogClient resolves tracks against the Spotify catalog.
type CatalogClient interface {
	GetTrack(ctx context.Context, token, trackID string) (*spotify.Track, error)
}

type Service struct {
	songs   domain.Repository
	rooms   roomDomain.Repository
	catalog CatalogClient
	tokens  AppTokenProvider
	log     logger.Interface
}

func NewService(
	songs domain.Repository,
	rooms roomDomain.Repository,
	catalog CatalogClient,
	tokens AppTokenProvider,
	log logger.Interface,
) *Service {
	return &Service{
		songs:   songs,
		rooms:   rooms,
		catalog: catalog,
		tokens:  tokens,
		log:     log.Named("song"),
	}
}

// Propose resolves a track reference against the catalog and files it as a
// pending proposal. The room must be active and the track must not already
// be proposed there. A successful proposal counts as room activity.
func (s *Service) Propose(ctx context.Context, roomID uint, req ProposeRequest) (*SongDTO, error) {
	trackID, err := spotify.NormalizeTrackID(req.Track)
	if err != nil {
		return nil, err
	}

	r, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !r.IsActive() {
		return nil, errors.NewConflictError("room is not active")
	}

	exists, err := s.songs.ExistsByRoomAndTrack(ctx, roomID, trackID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("track already proposed to this room")
	}

	token, err := s.tokens.AppToken(ctx)
	if err != nil {
		return nil, err
	}

	track, err := s.catalog.GetTrack(ctx, token, trackID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(track)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode track payload", err.Error())
	}

	proposal, err := domain.NewSong(roomID, domain.TrackInfo{
		TrackID:     track.ID,
		Title:       track.Name,
		Artist:      track.PrimaryArtist(),
		Album:       track.Album.Name,
		AlbumArtURL: track.AlbumArtURL(),
		DurationMS:  track.DurationMS,
		Explicit:    track.Explicit,
		URI:         track.URI,
		RawPayload:  raw,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.songs.Create(ctx, proposal); err != nil {
		return nil, err
	}

	r.RecordActivity()
	if err := s.rooms.Update(ctx, r); err != nil {
		s.log.Warnw("failed to record room activity", "room_id", roomID, "error", err)
	}

	s.log.Infow("song proposed", "room_id", roomID, "track_id", track.ID)
	return toDTO(proposal), nil
}

// ListByRoom returns all songs proposed to a room.
func (s *Service) ListByRoom(ctx context.Context, roomID uint) ([]*SongDTO, error) {
	songs, err := s.songs.FindByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return toDTOs(songs), nil
}

// ListByRoomAndStatus filters a room's songs by status.
func (s *Service) ListByRoomAndStatus(ctx context.Context, roomID uint, status string) ([]*SongDTO, error) {
	st := domain.Status(status)
	if !st.IsValid() {
		return nil, errors.NewValidationError("invalid song status")
	}

	songs, err := s.songs.FindByRoomAndStatus(ctx, roomID, st)
	if err != nil {
		return nil, err
	}
	return toDTOs(songs), nil
}

// Refuse marks a pending song as refused.
func (s *Service) Refuse(ctx context.Context, roomID, songID uint) (*SongDTO, error) {
	proposal, err := s.songs.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if proposal.RoomID() != roomID {
		return nil, errors.NewNotFoundError("song not found")
	}

	if err := proposal.Refuse(); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := s.songs.Update(ctx, proposal); err != nil {
		return nil, err
	}

	s.log.Infow("song refused", "room_id", roomID, "song_id", songID)
	return toDTO(proposal), nil
}

func toDTO(s *domain.Song) *SongDTO {
	track := s.Track()
	return &SongDTO{
		ID:          s.ID(),
		RoomID:      s.RoomID(),
		TrackID:     track.TrackID,
		Title:       track.Title,
		Artist:      track.Artist,
		Album:       track.Album,
		AlbumArtURL: track.AlbumArtURL,
		DurationMS:  track.DurationMS,
		Explicit:    track.Explicit,
		URI:         track.URI,
		Status:      s.Status().String(),
		AddedAt:     s.AddedAt(),
	}
}

func toDTOs(songs []*domain.Song) []*SongDTO {
	dtos := make([]*SongDTO, 0, len(songs))
	for _, s := range songs {
		dtos = append(dtos, toDTO(s))
	}
	return dtos
}
