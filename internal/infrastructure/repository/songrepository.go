package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tunemates/internal/domain/song"
	"tunemates/internal/infrastructure/persistence/mappers"
	"tunemates/internal/infrastructure/persistence/models"
	"tunemates/internal/shared/errors"
)

type SongRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SongMapper
}

func NewSongRepository(db *gorm.DB) song.Repository {
	return &SongRepositoryImpl{
		db:     db,
		mapper: mappers.NewSongMapper(),
	}
}

func (r *SongRepositoryImpl) Create(ctx context.Context, s *song.Song) error {
	model := r.mapper.ToModel(s)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("track already proposed to this room")
		}
		return fmt.Errorf("failed to create song: %w", err)
	}

	s.SetID(model.ID)
	return nil
}

func (r *SongRepositoryImpl) FindByID(ctx context.Context, id uint) (*song.Song, error) {
	var model models.SongModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("song not found")
		}
		return nil, fmt.Errorf("failed to get song by ID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SongRepositoryImpl) FindByRoom(ctx context.Context, roomID uint) ([]*song.Song, error) {
	var modelList []*models.SongModel

	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("added_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list songs by room: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SongRepositoryImpl) FindByRoomAndStatus(ctx context.Context, roomID uint, status song.Status) ([]*song.Song, error) {
	var modelList []*models.SongModel

	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, status.String()).
		Order("added_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list songs by status: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SongRepositoryImpl) ExistsByRoomAndTrack(ctx context.Context, roomID uint, trackID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.SongModel{}).
		Where("room_id = ? AND track_id = ?", roomID, trackID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check track: %w", err)
	}

	return count > 0, nil
}

func (r *SongRepositoryImpl) Update(ctx context.Context, s *song.Song) error {
	model := r.mapper.ToModel(s)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update song: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("song not found")
	}

	return nil
}

func (r *SongRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.SongModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete song: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("song not found")
	}

	return nil
}

func (r *SongRepositoryImpl) RefusePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SongModel{}).
		Where("status = ? AND added_at < ?", song.StatusPending.String(), cutoff).
		Update("status", song.StatusRefused.String())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to refuse stale songs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// DeleteAddedBefore removes stale non-approved songs. Approved songs stay,
// they are already on the playlist.
func (r *SongRepositoryImpl) DeleteAddedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status <> ? AND added_at < ?", song.StatusApproved.String(), cutoff).
		Delete(&models.SongModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale songs: %w", result.Error)
	}

	return result.RowsAffected, nil
}
