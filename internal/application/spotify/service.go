package spotify

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	roomDomain "tunemates/internal/domain/room"
	songDomain "tunemates/internal/domain/song"
	userDomain "tunemates/internal/domain/user"
	"tunemates/internal/infrastructure/spotify"
	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/errors"
	"tunemates/internal/shared/logger"
)

type Service struct {
	client *spotify.Client
	tokens *spotify.TokenManager
	states spotify.StateStore
	users  userDomain.Repository
	rooms  roomDomain.Repository
	songs  songDomain.Repository
	log    logger.Interface
}

func NewService(
	client *spotify.Client,
	tokens *spotify.TokenManager,
	states spotify.StateStore,
	users userDomain.Repository,
	rooms roomDomain.Repository,
	songs songDomain.Repository,
	log logger.Interface,
) *Service {
	return &Service{
		client: client,
		tokens: tokens,
		states: states,
		users:  users,
		rooms:  rooms,
		songs:  songs,
		log:    log.Named("spotify"),
	}
}

// AuthorizeLink persists a one-time state value and returns the Spotify
// consent URL for the user.
func (s *Service) AuthorizeLink(ctx context.Context, userID uint) (*AuthorizeLinkResponse, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.NewInternalError("failed to generate state", err.Error())
	}
	state := hex.EncodeToString(buf)

	rec := &spotify.StateRecord{
		State:     state,
		UserID:    userID,
		CreatedAt: biztime.NowUTC(),
	}
	if err := s.states.Save(ctx, rec); err != nil {
		return nil, err
	}

	return &AuthorizeLinkResponse{URL: s.tokens.AuthCodeURL(state)}, nil
}

// HandleCallback consumes the state, exchanges the code, and stores the
// encrypted token pair on the user who started the flow.
func (s *Service) HandleCallback(ctx context.Context, state, code string) error {
	if state == "" || code == "" {
		return errors.NewValidationError("state and code are required")
	}

	rec, err := s.states.Consume(ctx, state)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewUnauthorizedError("unknown or already used state")
		}
		return err
	}

	u, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return err
	}

	token, err := s.tokens.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	if err := s.tokens.StoreUserToken(ctx, u, token); err != nil {
		return err
	}

	s.log.Infow("spotify account linked", "user_id", u.ID())
	return nil
}

// OwnerToken hands the user their own short-lived access token.
func (s *Service) OwnerToken(ctx context.Context, userID uint) (*TokenResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.UserToken(ctx, u)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{AccessToken: token}, nil
}

// Search queries the catalog with the app-scoped token.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	token, err := s.tokens.AppToken(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.client.SearchTracks(ctx, token, req.Query, req.Limit, req.Offset, req.Market)
	if err != nil {
		return nil, err
	}

	tracks := make([]TrackDTO, 0, len(result.Tracks.Items))
	for i := range result.Tracks.Items {
		t := &result.Tracks.Items[i]
		tracks = append(tracks, TrackDTO{
			ID:          t.ID,
			Title:       t.Name,
			Artist:      t.PrimaryArtist(),
			Album:       t.Album.Name,
			AlbumArtURL: t.AlbumArtURL(),
			DurationMS:  t.DurationMS,
			Explicit:    t.Explicit,
			URI:         t.URI,
		})
	}

	return &SearchResponse{
		Tracks: tracks,
		Total:  result.Tracks.Total,
		Limit:  result.Tracks.Limit,
		Offset: result.Tracks.Offset,
	}, nil
}

// Approve pushes a pending song onto the room's linked playlist on the
// owner's behalf and marks it approved. The song stays pending when the
// room has no playlist or the playlist call fails.
func (s *Service) Approve(ctx context.Context, r *roomDomain.Room, songID uint) (*ApproveResponse, error) {
	proposal, err := s.songs.FindByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if proposal.RoomID() != r.ID() {
		return nil, errors.NewNotFoundError("song not found")
	}
	if proposal.Status() != songDomain.StatusPending {
		return nil, errors.NewConflictError("song is not pending")
	}
	if !r.HasPlaylist() {
		return nil, errors.NewConflictError("room has no linked playlist")
	}

	owner, err := s.users.FindByID(ctx, r.OwnerID())
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.UserToken(ctx, owner)
	if err != nil {
		return nil, err
	}

	uri := proposal.Track().URI
	if uri == "" {
		uri = spotify.TrackURI(proposal.Track().TrackID)
	}

	snapshot, err := s.client.AddToPlaylist(ctx, token, r.PlaylistID(), uri)
	if err != nil {
		return nil, err
	}

	if err := proposal.Approve(); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}
	if err := s.songs.Update(ctx, proposal); err != nil {
		return nil, err
	}

	r.RecordActivity()
	if err := s.rooms.Update(ctx, r); err != nil {
		s.log.Warnw("failed to record room activity", "room_id", r.ID(), "error", err)
	}

	s.log.Infow("song approved", "room_id", r.ID(), "song_id", songID, "snapshot_id", snapshot)
	return &ApproveResponse{SongID: songID, SnapshotID: snapshot}, nil
}

// Playlists lists the user's Spotify playlists for the link picker.
func (s *Service) Playlists(ctx context.Context, userID uint, limit, offset int) ([]PlaylistDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.UserToken(ctx, u)
	if err != nil {
		return nil, err
	}

	profile, err := s.client.Me(ctx, token)
	if err != nil {
		return nil, err
	}

	page, err := s.client.UserPlaylists(ctx, token, profile.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	playlists := make([]PlaylistDTO, 0, len(page.Items))
	for _, p := range page.Items {
		playlists = append(playlists, PlaylistDTO{
			ID:         p.ID,
			Name:       p.Name,
			Public:     p.Public,
			TrackCount: p.Tracks.Total,
		})
	}
	return playlists, nil
}
