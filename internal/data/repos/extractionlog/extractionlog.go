package extractionlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/mia-backend/internal/domain"
	"github.com/yungbote/mia-backend/internal/platform/logger"
)

type ExtractionLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ExtractionLog) ([]*types.ExtractionLog, error)
	RecentByGame(ctx context.Context, tx *gorm.DB, gameName string, limit int) ([]*types.ExtractionLog, error)
	CountByStatus(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
}

type extractionLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExtractionLogRepo(db *gorm.DB, baseLog *logger.Logger) ExtractionLogRepo {
	repoLog := baseLog.With("repo", "ExtractionLogRepo")
	return &extractionLogRepo{db: db, log: repoLog}
}

func (r *extractionLogRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ExtractionLog) ([]*types.ExtractionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ExtractionLog{}, nil
	}

	now := time.Now().UTC()
	for _, row := range rows {
		// SQLite has no server-side uuid generator.
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *extractionLogRepo) RecentByGame(ctx context.Context, tx *gorm.DB, gameName string, limit int) ([]*types.ExtractionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 20
	}

	var results []*types.ExtractionLog
	if err := transaction.WithContext(ctx).
		Where("game_name = ?", gameName).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *extractionLogRepo) CountByStatus(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.ExtractionLog{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
