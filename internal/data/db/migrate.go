package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/mia-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Operational audit trail
		// =========================
		&types.ExtractionLog{},
	)
}
