package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tunemates/internal/infrastructure/persistence/models"
	"tunemates/internal/infrastructure/spotify"
)

type AppTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewAppTokenRepository(db *gorm.DB) spotify.AppTokenStore {
	return &AppTokenRepositoryImpl{db: db}
}

func (r *AppTokenRepositoryImpl) Save(ctx context.Context, rec *spotify.AppTokenRecord) error {
	model := &models.AppTokenModel{
		EncryptedToken: rec.EncryptedToken,
		CreatedAt:      rec.CreatedAt,
		ExpiresAt:      rec.ExpiresAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save app token: %w", err)
	}

	rec.ID = model.ID
	return nil
}

func (r *AppTokenRepositoryImpl) Latest(ctx context.Context) (*spotify.AppTokenRecord, error) {
	var model models.AppTokenModel

	err := r.db.WithContext(ctx).Order("created_at DESC").First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest app token: %w", err)
	}

	return &spotify.AppTokenRecord{
		ID:             model.ID,
		EncryptedToken: model.EncryptedToken,
		CreatedAt:      model.CreatedAt,
		ExpiresAt:      model.ExpiresAt,
	}, nil
}

func (r *AppTokenRepositoryImpl) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.AppTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale app tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}
