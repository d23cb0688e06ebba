package migration

import (
	"fmt"

	"gorm.io/gorm"

	"tunemates/internal/infrastructure/persistence/models"
	"tunemates/internal/shared/logger"
)

// GormAutoMigrateStrategy migrates the schema from the model structs.
// Development only.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto-migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels lists every persisted model in migration order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.RoomModel{},
		&models.RoomCodeModel{},
		&models.SongModel{},
		&models.SpotifyStateModel{},
		&models.AppTokenModel{},
	}
}
