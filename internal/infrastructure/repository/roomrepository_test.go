package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tunemates/internal/domain/room"
	"tunemates/internal/infrastructure/persistence/models"
	"tunemates/internal/shared/errors"
)

func newTestRoom(t *testing.T, ownerID uint, name, slug string) *room.Room {
	t.Helper()
	r, err := room.NewRoom(ownerID, name, slug, "$2a$04$hash", "CH")
	require.NoError(t, err)
	return r
}

func TestRoomRepository_CreateAndFind(t *testing.T) {
	repo := NewRoomRepository(setupTestDB(t))
	ctx := context.Background()

	r := newTestRoom(t, 1, "Friday Night", "friday-night")
	require.NoError(t, repo.Create(ctx, r))
	require.NotZero(t, r.ID())

	bySlug, err := repo.FindBySlug(ctx, "friday-night")
	require.NoError(t, err)
	assert.Equal(t, r.ID(), bySlug.ID())
	assert.True(t, bySlug.IsActive())
	assert.Equal(t, "CH", bySlug.Market())
}

func TestRoomRepository_SlugConflict(t *testing.T) {
	repo := NewRoomRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestRoom(t, 1, "A", "same-slug")))

	err := repo.Create(ctx, newTestRoom(t, 2, "B", "same-slug"))
	assert.True(t, errors.IsConflictError(err))
}

func TestRoomRepository_OwnerQueries(t *testing.T) {
	repo := NewRoomRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := newTestRoom(t, 7, fmt.Sprintf("Room %d", i), fmt.Sprintf("room-%d", i))
		require.NoError(t, repo.Create(ctx, r))
	}
	require.NoError(t, repo.Create(ctx, newTestRoom(t, 8, "Other", "other")))

	rooms, err := repo.FindByOwner(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, rooms, 3)

	count, err := repo.CountByOwner(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	exists, err := repo.ExistsByOwnerAndName(ctx, 7, "Room 1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByOwnerAndName(ctx, 8, "Room 1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRoomRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	r := newTestRoom(t, 1, "Doomed", "doomed")
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, db.Create(&models.SongModel{RoomID: r.ID(), TrackID: "t1", Status: "pending"}).Error)
	require.NoError(t, db.Create(&models.RoomCodeModel{RoomID: r.ID(), Code: "ABCDEFGH", ExpiresAt: time.Now().Add(time.Hour)}).Error)

	require.NoError(t, repo.Delete(ctx, r.ID()))

	var songs, codes int64
	db.Model(&models.SongModel{}).Where("room_id = ?", r.ID()).Count(&songs)
	db.Model(&models.RoomCodeModel{}).Where("room_id = ?", r.ID()).Count(&codes)
	assert.Zero(t, songs)
	assert.Zero(t, codes)
}

func TestRoomRepository_Sweeps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	fresh := newTestRoom(t, 1, "Fresh", "fresh")
	require.NoError(t, repo.Create(ctx, fresh))

	stale := newTestRoom(t, 1, "Stale", "stale")
	require.NoError(t, repo.Create(ctx, stale))
	old := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&models.RoomModel{}).Where("id = ?", stale.ID()).Update("last_update", old).Error)

	affected, err := repo.DeactivateIdleBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Second run with no new qualifying rows affects nothing.
	affected, err = repo.DeactivateIdleBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, affected)

	deleted, err := repo.DeleteInactiveBefore(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(ctx, stale.ID())
	assert.True(t, errors.IsNotFoundError(err))

	var check models.RoomModel
	assert.NoError(t, db.First(&check, fresh.ID()).Error)
	assert.ErrorIs(t, db.First(&models.RoomModel{}, stale.ID()).Error, gorm.ErrRecordNotFound)
}
