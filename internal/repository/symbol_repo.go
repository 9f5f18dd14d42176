package repository

import (
	"context"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SymbolRepository interface {
	List(ctx context.Context, param dto.GetSymbolsParam) ([]model.Symbol, error)
	GetByID(ctx context.Context, id uint) (*model.Symbol, error)
	Seed(ctx context.Context, symbols []model.Symbol) (int64, error)
}

type symbolRepository struct {
	db *gorm.DB
}

func NewSymbolRepository(db *gorm.DB) SymbolRepository {
	return &symbolRepository{
		db: db,
	}
}

func (r *symbolRepository) List(ctx context.Context, param dto.GetSymbolsParam) ([]model.Symbol, error) {
	var symbols []model.Symbol

	q := r.db.WithContext(ctx)
	if param.Type != "" {
		q = q.Where("type = ?", param.Type)
	}
	if param.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Order("symbol ASC").Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *symbolRepository) GetByID(ctx context.Context, id uint) (*model.Symbol, error) {
	var symbol model.Symbol
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&symbol).Error; err != nil {
		return nil, err
	}
	return &symbol, nil
}

// Seed inserts symbols that are not yet present and returns how many were added.
func (r *symbolRepository) Seed(ctx context.Context, symbols []model.Symbol) (int64, error) {
	if len(symbols) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "symbol"}}, DoNothing: true}).
		Create(&symbols)
	return res.RowsAffected, res.Error
}
