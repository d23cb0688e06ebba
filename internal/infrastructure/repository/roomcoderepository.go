package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tunemates/internal/domain/room"
	"tunemates/internal/infrastructure/persistence/mappers"
	"tunemates/internal/infrastructure/persistence/models"
	"tunemates/internal/shared/errors"
)

type RoomCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RoomCodeMapper
}

func NewRoomCodeRepository(db *gorm.DB) room.CodeRepository {
	return &RoomCodeRepositoryImpl{
		db:     db,
		mapper: mappers.NewRoomCodeMapper(),
	}
}

func (r *RoomCodeRepositoryImpl) Create(ctx context.Context, c *room.Code) error {
	model := r.mapper.ToModel(c)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("code collision, retry")
		}
		return fmt.Errorf("failed to create room code: %w", err)
	}

	c.SetID(model.ID)
	return nil
}

func (r *RoomCodeRepositoryImpl) FindByValue(ctx context.Context, value string) (*room.Code, error) {
	var model models.RoomCodeModel

	err := r.db.WithContext(ctx).Where("code = ?", value).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("room code not found")
		}
		return nil, fmt.Errorf("failed to get room code: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *RoomCodeRepositoryImpl) FindByRoom(ctx context.Context, roomID uint) ([]*room.Code, error) {
	var modelList []*models.RoomCodeModel

	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list room codes: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *RoomCodeRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomCodeModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room code: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("room code not found")
	}

	return nil
}

func (r *RoomCodeRepositoryImpl) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&models.RoomCodeModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired room codes: %w", result.Error)
	}

	return result.RowsAffected, nil
}
