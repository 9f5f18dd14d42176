package model

import (
	"time"

	"gorm.io/datatypes"
)

// PerformanceSnapshot is a stored analytics report, captured by the snapshot job.
type PerformanceSnapshot struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AccountID  uint           `gorm:"not null;index" json:"account_id"`
	Range      string         `gorm:"column:time_range;not null" json:"range"`
	Metrics    datatypes.JSON `gorm:"type:jsonb;not null" json:"metrics"`
	CapturedAt time.Time      `gorm:"not null" json:"captured_at"`
}

func (PerformanceSnapshot) TableName() string {
	return "performance_snapshots"
}
