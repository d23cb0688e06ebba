package mappers

import (
	"gorm.io/datatypes"

	"tunemates/internal/domain/song"
	"tunemates/internal/infrastructure/persistence/models"
)

type SongMapper struct{}

func NewSongMapper() SongMapper {
	return SongMapper{}
}

func (SongMapper) ToModel(s *song.Song) *models.SongModel {
	track := s.Track()
	return &models.SongModel{
		ID:          s.ID(),
		RoomID:      s.RoomID(),
		TrackID:     track.TrackID,
		Title:       track.Title,
		Artist:      track.Artist,
		Album:       track.Album,
		AlbumArtURL: track.AlbumArtURL,
		DurationMS:  track.DurationMS,
		Explicit:    track.Explicit,
		URI:         track.URI,
		RawPayload:  datatypes.JSON(track.RawPayload),
		Status:      s.Status().String(),
		AddedAt:     s.AddedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func (SongMapper) ToEntity(m *models.SongModel) (*song.Song, error) {
	track := song.TrackInfo{
		TrackID:     m.TrackID,
		Title:       m.Title,
		Artist:      m.Artist,
		Album:       m.Album,
		AlbumArtURL: m.AlbumArtURL,
		DurationMS:  m.DurationMS,
		Explicit:    m.Explicit,
		URI:         m.URI,
		RawPayload:  []byte(m.RawPayload),
	}
	return song.ReconstructSong(m.ID, m.RoomID, track, song.Status(m.Status), m.AddedAt, m.UpdatedAt)
}

func (mp SongMapper) ToEntities(modelList []*models.SongModel) ([]*song.Song, error) {
	entities := make([]*song.Song, 0, len(modelList))
	for _, m := range modelList {
		entity, err := mp.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
