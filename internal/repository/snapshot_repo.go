package repository

import (
	"context"

	"trading-journal/internal/model"

	"gorm.io/gorm"
)

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *model.PerformanceSnapshot) error
	ListByAccount(ctx context.Context, accountID uint, limit int) ([]model.PerformanceSnapshot, error)
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *model.PerformanceSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepository) ListByAccount(ctx context.Context, accountID uint, limit int) ([]model.PerformanceSnapshot, error) {
	var snapshots []model.PerformanceSnapshot
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("captured_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
