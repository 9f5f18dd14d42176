package model

import (
	"time"

	"github.com/google/uuid"
)

type TradeAction string

const (
	TradeActionBuy  TradeAction = "buy"
	TradeActionSell TradeAction = "sell"
)

type TradeActionType string

const (
	ActionTypeLimit  TradeActionType = "limit"
	ActionTypeMarket TradeActionType = "market"
	ActionTypeStop   TradeActionType = "stop"
)

type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

type Trade struct {
	ID               string          `gorm:"primaryKey" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID        uint            `gorm:"not null;index" json:"account_id"`
	SymbolID         uint            `gorm:"not null" json:"symbol_id"`
	Action           TradeAction     `gorm:"not null" json:"action"`
	ActionType       TradeActionType `gorm:"not null" json:"action_type"`
	Quantity         float64         `gorm:"not null" json:"quantity"`
	EntryPrice       float64         `gorm:"not null" json:"entry_price"`
	ExitPrice        *float64        `json:"exit_price"`
	TakeProfitAmount *float64        `json:"take_profit_amount"`
	StopLossAmount   *float64        `json:"stop_loss_amount"`
	TradeDate        time.Time       `gorm:"type:date;not null" json:"trade_date"`
	Status           TradeStatus     `gorm:"not null" json:"status"`
	ProfitLoss       *float64        `json:"profit_loss"`
	Notes            string          `json:"notes"`
	Emotion          string          `json:"emotion"`
	RiskRewardRatio  string          `json:"risk_reward_ratio"`
	ClosedAt         *time.Time      `json:"closed_at"`
	Symbol           Symbol          `gorm:"foreignKey:SymbolID;references:ID" json:"symbol"`
	Rules            []Rule          `gorm:"many2many:trade_rules;" json:"rules,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

func (t Trade) IsClosed() bool {
	return t.Status == TradeStatusClosed
}
