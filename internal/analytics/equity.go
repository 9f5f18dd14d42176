package analytics

import (
	"sort"
	"time"
)

// EquityPoint is the running balance after a closed trade. The first point of
// a curve is the seed at account creation with a zero delta.
type EquityPoint struct {
	Date       time.Time `json:"date"`
	Balance    float64   `json:"balance"`
	TradeDelta float64   `json:"trade_delta"`
}

// EquityCurve replays closed trades in date order on top of the initial
// deposit. Trades on the same date keep their input order.
func EquityCurve(closed []Trade, account Account) []EquityPoint {
	sorted := make([]Trade, len(closed))
	copy(sorted, closed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	balance := account.InitialDeposit
	curve := make([]EquityPoint, 0, len(sorted)+1)
	curve = append(curve, EquityPoint{Date: account.CreatedAt, Balance: balance})

	for _, t := range sorted {
		pl := t.ProfitLoss()
		balance = finite(balance + pl)
		curve = append(curve, EquityPoint{Date: t.Date, Balance: balance, TradeDelta: pl})
	}
	return curve
}

// MaxDrawdown returns the largest peak to trough decline along the curve, in
// percent of the peak. The peak starts at the initial deposit.
func MaxDrawdown(curve []EquityPoint, initialDeposit float64) float64 {
	peak := initialDeposit
	var maxDD float64

	for _, point := range curve {
		if point.Balance > peak {
			peak = point.Balance
		}
		if peak <= 0 {
			continue
		}
		if dd := finite(100 * (peak - point.Balance) / peak); dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
