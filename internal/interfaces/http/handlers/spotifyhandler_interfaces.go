package handlers

import (
	"context"

	spotifyapp "tunemates/internal/application/spotify"
	"tunemates/internal/domain/room"
)

// Service interfaces for SpotifyHandler

type spotifyService interface {
	AuthorizeLink(ctx context.Context, userID uint) (*spotifyapp.AuthorizeLinkResponse, error)
	HandleCallback(ctx context.Context, state, code string) error
	OwnerToken(ctx context.Context, userID uint) (*spotifyapp.TokenResponse, error)
	Search(ctx context.Context, req spotifyapp.SearchRequest) (*spotifyapp.SearchResponse, error)
	Approve(ctx context.Context, r *room.Room, songID uint) (*spotifyapp.ApproveResponse, error)
	Playlists(ctx context.Context, userID uint, limit, offset int) ([]spotifyapp.PlaylistDTO, error)
}
