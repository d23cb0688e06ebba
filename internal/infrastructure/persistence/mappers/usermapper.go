package mappers

import (
	"tunemates/internal/domain/user"
	"tunemates/internal/infrastructure/persistence/models"
)

type UserMapper struct{}

func NewUserMapper() UserMapper {
	return UserMapper{}
}

func (UserMapper) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                  u.ID(),
		Username:            u.Username(),
		Email:               u.Email(),
		PasswordHash:        u.PasswordHash(),
		SpotifyRefreshToken: u.SpotifyRefreshToken(),
		SpotifyAccessToken:  u.SpotifyAccessToken(),
		SpotifyTokenExpiry:  u.SpotifyTokenExpiry(),
		CreatedAt:           u.CreatedAt(),
		UpdatedAt:           u.UpdatedAt(),
	}
}

func (UserMapper) ToEntity(m *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.SpotifyRefreshToken,
		m.SpotifyAccessToken,
		m.SpotifyTokenExpiry,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
