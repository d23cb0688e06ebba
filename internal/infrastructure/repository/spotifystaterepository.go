package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tunemates/internal/infrastructure/persistence/models"
	"tunemates/internal/infrastructure/spotify"
	"tunemates/internal/shared/errors"
)

type SpotifyStateRepositoryImpl struct {
	db *gorm.DB
}

func NewSpotifyStateRepository(db *gorm.DB) spotify.StateStore {
	return &SpotifyStateRepositoryImpl{db: db}
}

func (r *SpotifyStateRepositoryImpl) Save(ctx context.Context, rec *spotify.StateRecord) error {
	model := &models.SpotifyStateModel{
		State:     rec.State,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save spotify state: %w", err)
	}

	rec.ID = model.ID
	return nil
}

// Consume atomically looks up and deletes the state so each value is
// redeemable exactly once.
func (r *SpotifyStateRepositoryImpl) Consume(ctx context.Context, state string) (*spotify.StateRecord, error) {
	var rec *spotify.StateRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.SpotifyStateModel

		if err := tx.Where("state = ?", state).First(&model).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.NewNotFoundError("spotify state not found")
			}
			return fmt.Errorf("failed to get spotify state: %w", err)
		}

		if err := tx.Delete(&models.SpotifyStateModel{}, model.ID).Error; err != nil {
			return fmt.Errorf("failed to consume spotify state: %w", err)
		}

		rec = &spotify.StateRecord{
			ID:        model.ID,
			State:     model.State,
			UserID:    model.UserID,
			CreatedAt: model.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (r *SpotifyStateRepositoryImpl) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.SpotifyStateModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale spotify states: %w", result.Error)
	}

	return result.RowsAffected, nil
}
