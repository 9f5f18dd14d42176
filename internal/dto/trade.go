package dto

type CreateTradeRequest struct {
	AccountID        uint     `json:"account_id" validate:"required"`
	SymbolID         uint     `json:"symbol_id" validate:"required"`
	Action           string   `json:"action" validate:"required,oneof=buy sell"`
	ActionType       string   `json:"action_type" validate:"required,oneof=limit market stop"`
	Quantity         float64  `json:"quantity" validate:"required,gt=0"`
	EntryPrice       float64  `json:"entry_price" validate:"required,gt=0"`
	TakeProfitAmount *float64 `json:"take_profit_amount" validate:"omitempty,gt=0"`
	StopLossAmount   *float64 `json:"stop_loss_amount" validate:"omitempty,gt=0"`
	TradeDate        string   `json:"trade_date" validate:"required,datetime=2006-01-02"`
	Notes            string   `json:"notes" validate:"max=5000"`
	Emotion          string   `json:"emotion" validate:"max=64"`
	RiskRewardRatio  string   `json:"risk_reward_ratio" validate:"omitempty,oneof=1:1 1:2 1:3 1:5"`
	RuleIDs          []string `json:"rule_ids" validate:"dive,required"`
}

// UpdateTradeRequest edits an open trade. Nil fields are left unchanged.
type UpdateTradeRequest struct {
	Quantity         *float64 `json:"quantity" validate:"omitempty,gt=0"`
	TakeProfitAmount *float64 `json:"take_profit_amount" validate:"omitempty,gt=0"`
	StopLossAmount   *float64 `json:"stop_loss_amount" validate:"omitempty,gt=0"`
	Notes            *string  `json:"notes" validate:"omitempty,max=5000"`
	RiskRewardRatio  *string  `json:"risk_reward_ratio" validate:"omitempty,oneof=1:1 1:2 1:3 1:5"`
}

// CloseTradeRequest closes an open trade. ProfitLoss is derived from the exit
// price when omitted.
type CloseTradeRequest struct {
	ExitPrice  float64  `json:"exit_price" validate:"required,gt=0"`
	ProfitLoss *float64 `json:"profit_loss"`
}

type ListTradesParam struct {
	AccountID uint
	Page      int
	PageSize  int
}
