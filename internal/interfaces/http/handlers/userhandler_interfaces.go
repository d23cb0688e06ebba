package handlers

import (
	"context"

	userapp "tunemates/internal/application/user"
)

// Service interfaces for UserHandler

type userService interface {
	Register(ctx context.Context, req userapp.RegisterRequest) (*userapp.UserDTO, error)
	Login(ctx context.Context, req userapp.LoginRequest) (*userapp.LoginResponse, error)
	GetByID(ctx context.Context, id uint) (*userapp.UserDTO, error)
	List(ctx context.Context, page, pageSize int) ([]*userapp.UserDTO, int64, error)
	UpdateProfile(ctx context.Context, userID uint, req userapp.UpdateProfileRequest) (*userapp.UserDTO, error)
	ChangePassword(ctx context.Context, userID uint, req userapp.ChangePasswordRequest) error
	Delete(ctx context.Context, userID uint, req userapp.DeleteRequest) error
}
