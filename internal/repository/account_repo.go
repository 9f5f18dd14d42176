package repository

import (
	"context"

	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account, opts ...utils.DBOption) error
	GetByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Account, error)
	ListAll(ctx context.Context) ([]model.Account, error)
	UpdateBalance(ctx context.Context, id uint, balance float64, opts ...utils.DBOption) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(account).Error
}

func (r *accountRepository) GetByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Account, error) {
	var account model.Account
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) ListAll(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uint, balance float64, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Account{}).
		Where("id = ?", id).
		Update("current_balance", balance).Error
}
