package repository

import (
	"context"

	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"gorm.io/gorm"
)

type BalanceTransactionRepository interface {
	Create(ctx context.Context, txn *model.BalanceTransaction, opts ...utils.DBOption) error
	ListByAccount(ctx context.Context, accountID uint, limit int) ([]model.BalanceTransaction, error)
}

type balanceTransactionRepository struct {
	db *gorm.DB
}

func NewBalanceTransactionRepository(db *gorm.DB) BalanceTransactionRepository {
	return &balanceTransactionRepository{
		db: db,
	}
}

func (r *balanceTransactionRepository) Create(ctx context.Context, txn *model.BalanceTransaction, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(txn).Error
}

func (r *balanceTransactionRepository) ListByAccount(ctx context.Context, accountID uint, limit int) ([]model.BalanceTransaction, error) {
	var txns []model.BalanceTransaction
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
