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

type RoomRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RoomMapper
}

func NewRoomRepository(db *gorm.DB) room.Repository {
	return &RoomRepositoryImpl{
		db:     db,
		mapper: mappers.NewRoomMapper(),
	}
}

func (r *RoomRepositoryImpl) Create(ctx context.Context, rm *room.Room) error {
	model := r.mapper.ToModel(rm)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("room slug already in use")
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	rm.SetID(model.ID)
	return nil
}

func (r *RoomRepositoryImpl) FindByID(ctx context.Context, id uint) (*room.Room, error) {
	var model models.RoomModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("room not found")
		}
		return nil, fmt.Errorf("failed to get room by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *RoomRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*room.Room, error) {
	var model models.RoomModel

	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("room not found")
		}
		return nil, fmt.Errorf("failed to get room by slug: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *RoomRepositoryImpl) FindByOwner(ctx context.Context, ownerID uint) ([]*room.Room, error) {
	var modelList []*models.RoomModel

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by owner: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *RoomRepositoryImpl) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms by owner: %w", err)
	}

	return count, nil
}

func (r *RoomRepositoryImpl) ExistsByOwnerAndName(ctx context.Context, ownerID uint, name string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check room name: %w", err)
	}

	return count > 0, nil
}

func (r *RoomRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check room slug: %w", err)
	}

	return count > 0, nil
}

func (r *RoomRepositoryImpl) Update(ctx context.Context, rm *room.Room) error {
	model := r.mapper.ToModel(rm)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("room slug already in use")
		}
		return fmt.Errorf("failed to update room: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("room not found")
	}

	return nil
}

// Delete removes the room together with its songs and share codes.
func (r *RoomRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.SongModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete room songs: %w", err)
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomCodeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete room codes: %w", err)
		}

		result := tx.Delete(&models.RoomModel{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError("room not found")
		}
		return nil
	})
}

func (r *RoomRepositoryImpl) DeactivateIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("active = ? AND last_update < ?", true, cutoff).
		Update("active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate idle rooms: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *RoomRepositoryImpl) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.Model(&models.RoomModel{}).
			Where("active = ? AND last_update < ?", false, cutoff).
			Pluck("id", &ids).Error
		if err != nil {
			return fmt.Errorf("failed to select inactive rooms: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("room_id IN ?", ids).Delete(&models.SongModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete songs of inactive rooms: %w", err)
		}
		if err := tx.Where("room_id IN ?", ids).Delete(&models.RoomCodeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete codes of inactive rooms: %w", err)
		}

		result := tx.Where("id IN ?", ids).Delete(&models.RoomModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete inactive rooms: %w", result.Error)
		}

		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
