package mappers

import (
	"tunemates/internal/domain/room"
	"tunemates/internal/infrastructure/persistence/models"
)

type RoomMapper struct{}

func NewRoomMapper() RoomMapper {
	return RoomMapper{}
}

func (RoomMapper) ToModel(r *room.Room) *models.RoomModel {
	return &models.RoomModel{
		ID:           r.ID(),
		OwnerID:      r.OwnerID(),
		Name:         r.Name(),
		Slug:         r.Slug(),
		PasswordHash: r.PasswordHash(),
		Active:       r.IsActive(),
		Market:       r.Market(),
		PlaylistID:   r.PlaylistID(),
		LastUpdate:   r.LastUpdate(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

func (RoomMapper) ToEntity(m *models.RoomModel) (*room.Room, error) {
	return room.ReconstructRoom(
		m.ID,
		m.OwnerID,
		m.Name,
		m.Slug,
		m.PasswordHash,
		m.Active,
		m.Market,
		m.PlaylistID,
		m.LastUpdate,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func (mp RoomMapper) ToEntities(modelList []*models.RoomModel) ([]*room.Room, error) {
	entities := make([]*room.Room, 0, len(modelList))
	for _, m := range modelList {
		entity, err := mp.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

type RoomCodeMapper struct{}

func NewRoomCodeMapper() RoomCodeMapper {
	return RoomCodeMapper{}
}

func (RoomCodeMapper) ToModel(c *room.Code) *models.RoomCodeModel {
	return &models.RoomCodeModel{
		ID:        c.ID(),
		RoomID:    c.RoomID(),
		Code:      c.Value(),
		CreatedAt: c.CreatedAt(),
		ExpiresAt: c.ExpiresAt(),
	}
}

func (RoomCodeMapper) ToEntity(m *models.RoomCodeModel) (*room.Code, error) {
	return room.ReconstructCode(m.ID, m.RoomID, m.Code, m.CreatedAt, m.ExpiresAt)
}

func (mp RoomCodeMapper) ToEntities(modelList []*models.RoomCodeModel) ([]*room.Code, error) {
	entities := make([]*room.Code, 0, len(modelList))
	for _, m := range modelList {
		entity, err := mp.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
