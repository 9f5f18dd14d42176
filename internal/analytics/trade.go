// Package analytics derives trading-performance metrics from an account's
// journaled trades. Every function here is pure: it reads a snapshot that the
// caller has already fetched and never touches storage or the network.
package analytics

import "time"

type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// RiskReward is the declared risk to reward ratio of a trade.
type RiskReward string

const (
	RiskRewardNone RiskReward = ""
	RiskReward1To1 RiskReward = "1:1"
	RiskReward1To2 RiskReward = "1:2"
	RiskReward1To3 RiskReward = "1:3"
	RiskReward1To5 RiskReward = "1:5"
)

func (r RiskReward) Valid() bool {
	switch r {
	case RiskRewardNone, RiskReward1To1, RiskReward1To2, RiskReward1To3, RiskReward1To5:
		return true
	}
	return false
}

// RawTrade is a trade entry as it arrives from storage or from a client
// supplied snapshot. Numeric fields are nil when missing.
type RawTrade struct {
	ID               string   `json:"id"`
	AccountID        string   `json:"account_id"`
	Symbol           string   `json:"symbol"`
	Action           string   `json:"action"`
	Quantity         *float64 `json:"quantity"`
	EntryPrice       *float64 `json:"entry_price"`
	ExitPrice        *float64 `json:"exit_price,omitempty"`
	TakeProfitAmount *float64 `json:"take_profit_amount,omitempty"`
	StopLossAmount   *float64 `json:"stop_loss_amount,omitempty"`
	Date             string   `json:"date"`
	Status           string   `json:"status"`
	ProfitLoss       *float64 `json:"profit_loss,omitempty"`
	Notes            string   `json:"notes"`
	RiskRewardRatio  string   `json:"risk_reward_ratio,omitempty"`
}

// Closing holds what only exists once a trade is closed.
type Closing struct {
	ExitPrice  *float64
	ProfitLoss float64
}

// Trade is a validated trade. A nil Closing means the position is still open.
type Trade struct {
	ID               string
	AccountID        string
	Symbol           string
	Action           Action
	Quantity         float64
	EntryPrice       float64
	TakeProfitAmount *float64
	StopLossAmount   *float64
	Date             time.Time
	Notes            string
	RiskReward       RiskReward
	Closing          *Closing
}

func (t Trade) Status() Status {
	if t.Closing != nil {
		return StatusClosed
	}
	return StatusOpen
}

func (t Trade) IsClosed() bool {
	return t.Closing != nil
}

// ProfitLoss returns the realized result, zero for open trades.
func (t Trade) ProfitLoss() float64 {
	if t.Closing == nil {
		return 0
	}
	return t.Closing.ProfitLoss
}

// PositionValue is entry price times quantity.
func (t Trade) PositionValue() float64 {
	return t.EntryPrice * t.Quantity
}

// Account is the read-only capital snapshot the metrics are computed against.
type Account struct {
	ID             string    `json:"id"`
	InitialDeposit float64   `json:"initial_deposit"`
	CurrentBalance float64   `json:"current_balance"`
	CreatedAt      time.Time `json:"created_at"`
}
