package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/mia-backend/internal/data/repos/extractionlog"
	"github.com/yungbote/mia-backend/internal/platform/logger"
)

type Repos struct {
	ExtractionLog extractionlog.ExtractionLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		ExtractionLog: extractionlog.NewExtractionLogRepo(db, log),
	}
}
