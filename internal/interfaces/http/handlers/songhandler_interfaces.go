package handlers

import (
	"context"

	songapp "tunemates/internal/application/song"
)

// Service interfaces for SongHandler

type songService interface {
	Propose(ctx context.Context, roomID uint, req songapp.ProposeRequest) (*songapp.SongDTO, error)
	ListByRoom(ctx context.Context, roomID uint) ([]*songapp.SongDTO, error)
	ListByRoomAndStatus(ctx context.Context, roomID uint, status string) ([]*songapp.SongDTO, error)
	Refuse(ctx context.Context, roomID, songID uint) (*songapp.SongDTO, error)
}
