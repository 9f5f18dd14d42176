package repository

import (
	"context"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"

	"gorm.io/gorm"
)

type TradeRepository interface {
	Create(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	AttachRules(ctx context.Context, tradeID string, ruleIDs []string, opts ...utils.DBOption) error
	GetByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Trade, error)
	Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	UpdatePlan(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) (int64, error)
	List(ctx context.Context, param dto.ListTradesParam) ([]model.Trade, int64, error)
	ListByAccount(ctx context.Context, accountID uint) ([]model.Trade, error)
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{
		db: db,
	}
}

func (r *tradeRepository) Create(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Omit("Symbol", "Rules").Create(trade).Error
}

type tradeRule struct {
	TradeID string
	RuleID  string
}

func (tradeRule) TableName() string {
	return "trade_rules"
}

func (r *tradeRepository) AttachRules(ctx context.Context, tradeID string, ruleIDs []string, opts ...utils.DBOption) error {
	if len(ruleIDs) == 0 {
		return nil
	}
	rows := make([]tradeRule, 0, len(ruleIDs))
	for _, ruleID := range ruleIDs {
		rows = append(rows, tradeRule{TradeID: tradeID, RuleID: ruleID})
	}
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(&rows).Error
}

func (r *tradeRepository) GetByID(ctx context.Context, id string, opts ...utils.DBOption) (*model.Trade, error) {
	var trade model.Trade
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Preload("Symbol").
		Preload("Rules").
		Where("id = ?", id).
		First(&trade).Error; err != nil {
		return nil, err
	}
	return &trade, nil
}

func (r *tradeRepository) Update(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Omit("Symbol", "Rules").Save(trade).Error
}

// UpdatePlan writes the editable plan columns of a trade that is still open.
// It reports the number of rows changed, zero once the trade is closed.
func (r *tradeRepository) UpdatePlan(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) (int64, error) {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Trade{}).
		Where("id = ? AND status = ?", trade.ID, model.TradeStatusOpen).
		Updates(map[string]interface{}{
			"quantity":           trade.Quantity,
			"take_profit_amount": trade.TakeProfitAmount,
			"stop_loss_amount":   trade.StopLossAmount,
			"notes":              trade.Notes,
			"risk_reward_ratio":  trade.RiskRewardRatio,
		})
	return result.RowsAffected, result.Error
}

// List returns one page of an account's trades, newest first, with the total
// row count for the account.
func (r *tradeRepository) List(ctx context.Context, param dto.ListTradesParam) ([]model.Trade, int64, error) {
	var (
		trades []model.Trade
		total  int64
	)

	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Trade{}).Where("account_id = ?", param.AccountID)
	}
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := utils.Page{Number: param.Page, Size: param.PageSize}
	if err := scope().Preload("Symbol").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&trades).Error; err != nil {
		return nil, 0, err
	}
	return trades, total, nil
}

// ListByAccount loads every trade of an account for metric calculation.
func (r *tradeRepository) ListByAccount(ctx context.Context, accountID uint) ([]model.Trade, error) {
	var trades []model.Trade
	if err := r.db.WithContext(ctx).
		Preload("Symbol").
		Where("account_id = ?", accountID).
		Order("trade_date ASC, created_at ASC").
		Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}
