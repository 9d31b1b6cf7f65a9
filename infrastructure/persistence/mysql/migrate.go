package mysql

import (
	"fmt"

	"horseadmin/infrastructure/persistence"
	"horseadmin/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or alters the tables.
func AutoMigrate(db *gorm.DB) error {
	models := persistence.Models()
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info("Database schema migrated", zap.Int("tables", len(models)))
	return nil
}
