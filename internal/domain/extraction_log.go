package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ExtractionLog records one mechanic-extraction LLM call for operational
// inspection. It is an audit trail, not session state.
type ExtractionLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GameName  string         `gorm:"column:game_name;not null;index" json:"game_name"`
	Model     string         `gorm:"column:model" json:"model"`
	Status    string         `gorm:"column:status;not null" json:"status"`
	Summary   datatypes.JSON `gorm:"column:summary" json:"summary,omitempty"`
	LatencyMS int64          `gorm:"column:latency_ms" json:"latency_ms"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (ExtractionLog) TableName() string { return "extraction_log" }

const (
	ExtractionStatusOK      = "ok"
	ExtractionStatusError   = "error"
	ExtractionStatusSkipped = "skipped"
)
