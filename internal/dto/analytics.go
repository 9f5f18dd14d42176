package dto

import (
	"time"

	"trading-journal/internal/analytics"
	"trading-journal/pkg/utils"
)

// CalculateRequest is a self-contained snapshot for the stateless calculator.
type CalculateRequest struct {
	Range   string               `json:"range" validate:"omitempty,oneof=7d 30d 90d 1y all"`
	Account AccountSnapshot      `json:"account" validate:"required"`
	Trades  []analytics.RawTrade `json:"trades" validate:"max=10000"`
}

type AccountSnapshot struct {
	InitialDeposit float64 `json:"initial_deposit" validate:"gt=0"`
	CurrentBalance float64 `json:"current_balance"`
	CreatedAt      string  `json:"created_at" validate:"required"`
}

type EquityPoint struct {
	Date       string  `json:"date"`
	Balance    float64 `json:"balance"`
	TradeDelta float64 `json:"trade_delta"`
}

type MonthlyPnL struct {
	Month    string  `json:"month"`
	PnL      float64 `json:"pnl"`
	Positive bool    `json:"positive"`
}

type SymbolPerformance struct {
	Symbol string  `json:"symbol"`
	Trades int     `json:"trades"`
	PnL    float64 `json:"pnl"`
	AvgPnL float64 `json:"avg_pnl"`
}

type RiskRewardShare struct {
	Ratio      string  `json:"ratio"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MetricsResponse is the dashboard payload. Every ratio and amount is rounded
// to two decimals here and nowhere earlier.
type MetricsResponse struct {
	Range                 string                         `json:"range"`
	GeneratedAt           time.Time                      `json:"generated_at"`
	TotalTrades           int                            `json:"total_trades"`
	ClosedTrades          int                            `json:"closed_trades"`
	OpenTrades            int                            `json:"open_trades"`
	WinningTrades         int                            `json:"winning_trades"`
	LosingTrades          int                            `json:"losing_trades"`
	TotalProfitLoss       float64                        `json:"total_profit_loss"`
	WinRate               float64                        `json:"win_rate"`
	AvgWin                float64                        `json:"avg_win"`
	AvgLoss               float64                        `json:"avg_loss"`
	ProfitFactor          float64                        `json:"profit_factor"`
	TotalInvested         float64                        `json:"total_invested"`
	AccountValue          float64                        `json:"account_value"`
	ReturnPercentage      float64                        `json:"return_percentage"`
	SharpeRatio           float64                        `json:"sharpe_ratio"`
	CapitalUsedPercentage float64                        `json:"capital_used_percentage"`
	MaxDrawdown           float64                        `json:"max_drawdown"`
	ConsistencyScore      int                            `json:"consistency_score"`
	Consistency           analytics.ConsistencyBreakdown `json:"consistency"`
	EquityCurve           []EquityPoint                  `json:"equity_curve"`
	MonthlyPnL            []MonthlyPnL                   `json:"monthly_pnl"`
	SymbolPerformance     []SymbolPerformance            `json:"symbol_performance"`
	RiskReward            []RiskRewardShare              `json:"risk_reward"`
	Rejected              []analytics.Rejection          `json:"rejected,omitempty"`
}

const displayPlaces = 2

func round(v float64) float64 {
	return utils.Round(v, displayPlaces)
}

// NewMetricsResponse renders a report for display.
func NewMetricsResponse(r analytics.Report) *MetricsResponse {
	s := r.Summary
	resp := &MetricsResponse{
		Range:                 string(r.Window),
		GeneratedAt:           r.GeneratedAt,
		TotalTrades:           r.TotalTrades,
		ClosedTrades:          s.ClosedTrades,
		OpenTrades:            s.OpenTrades,
		WinningTrades:         s.WinningTrades,
		LosingTrades:          s.LosingTrades,
		TotalProfitLoss:       round(s.TotalProfitLoss),
		WinRate:               round(s.WinRate),
		AvgWin:                round(s.AvgWin),
		AvgLoss:               round(s.AvgLoss),
		ProfitFactor:          round(s.ProfitFactor),
		TotalInvested:         round(s.TotalInvested),
		AccountValue:          round(s.AccountValue),
		ReturnPercentage:      round(s.ReturnPercentage),
		SharpeRatio:           round(s.SharpeRatio),
		CapitalUsedPercentage: round(s.CapitalUsedPercentage),
		MaxDrawdown:           round(r.MaxDrawdown),
		ConsistencyScore:      r.Consistency.Score,
		Consistency:           r.Consistency,
		EquityCurve:           make([]EquityPoint, 0, len(r.EquityCurve)),
		MonthlyPnL:            make([]MonthlyPnL, 0, len(r.MonthlyPnL)),
		SymbolPerformance:     make([]SymbolPerformance, 0, len(r.SymbolStats)),
		RiskReward:            make([]RiskRewardShare, 0, len(r.RiskReward)),
		Rejected:              r.Rejected,
	}

	for _, p := range r.EquityCurve {
		resp.EquityCurve = append(resp.EquityCurve, EquityPoint{
			Date:       p.Date.Format(analytics.DateLayout),
			Balance:    round(p.Balance),
			TradeDelta: round(p.TradeDelta),
		})
	}
	for _, m := range r.MonthlyPnL {
		resp.MonthlyPnL = append(resp.MonthlyPnL, MonthlyPnL{Month: m.Month, PnL: round(m.PnL), Positive: m.Positive})
	}
	for _, sp := range r.SymbolStats {
		resp.SymbolPerformance = append(resp.SymbolPerformance, SymbolPerformance{
			Symbol: sp.Symbol,
			Trades: sp.Trades,
			PnL:    round(sp.PnL),
			AvgPnL: round(sp.AvgPnL),
		})
	}
	for _, rr := range r.RiskReward {
		resp.RiskReward = append(resp.RiskReward, RiskRewardShare{
			Ratio:      string(rr.Ratio),
			Count:      rr.Count,
			Percentage: round(rr.Percentage),
		})
	}

	return resp
}
