package handlers

import (
	"context"

	roomapp "tunemates/internal/application/room"
	"tunemates/internal/domain/room"
)

// Service interfaces for RoomHandler

type roomService interface {
	Create(ctx context.Context, ownerID uint, req roomapp.CreateRequest) (*roomapp.RoomDTO, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*roomapp.RoomDTO, error)
	GetByID(ctx context.Context, id uint) (*roomapp.RoomDTO, error)
	Join(ctx context.Context, roomSlug string, req roomapp.JoinRequest) (*roomapp.PublicRoomDTO, error)
	Update(ctx context.Context, r *room.Room, req roomapp.UpdateRequest) (*roomapp.RoomDTO, error)
	ChangePassword(ctx context.Context, r *room.Room, req roomapp.ChangePasswordRequest) error
	Delete(ctx context.Context, roomID uint) error
	IssueCode(ctx context.Context, roomID uint) (*roomapp.CodeDTO, error)
	RedeemCode(ctx context.Context, req roomapp.RedeemRequest) (*roomapp.PublicRoomDTO, error)
	ListCodes(ctx context.Context, roomID uint) ([]*roomapp.CodeDTO, error)
	DeleteCode(ctx context.Context, roomID, codeID uint) error
}
