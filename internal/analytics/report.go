package analytics

import "time"

// Input is a complete snapshot of one account for one time range.
type Input struct {
	Account Account
	Trades  []RawTrade
	Window  Window
	Now     time.Time
}

// Report is everything the dashboard shows for a window.
type Report struct {
	Window      Window
	GeneratedAt time.Time
	TotalTrades int
	Summary     Summary
	MaxDrawdown float64
	Consistency ConsistencyBreakdown
	EquityCurve []EquityPoint
	MonthlyPnL  []MonthlyPnL
	SymbolStats []SymbolStat
	RiskReward  []RiskRewardStat
	Rejected    []Rejection
}

// Compute runs the full pipeline: normalize, filter to the window, partition,
// then derive every metric. Identical inputs give identical reports.
func Compute(in Input) Report {
	window := in.Window
	if window == "" {
		window = WindowAll
	}

	trades, rejected := Normalize(in.Trades)
	p := Split(FilterWindow(trades, window, in.Now))

	curve := EquityCurve(p.Closed, in.Account)

	return Report{
		Window:      window,
		GeneratedAt: in.Now,
		TotalTrades: len(p.All),
		Summary:     Summarize(p, in.Account),
		MaxDrawdown: MaxDrawdown(curve, in.Account.InitialDeposit),
		Consistency: ConsistencyScore(p.All, in.Account.CurrentBalance),
		EquityCurve: curve,
		MonthlyPnL:  MonthlyProfitLoss(p.Closed),
		SymbolStats: SymbolPerformance(p.Closed, DefaultSymbolLimit),
		RiskReward:  RiskRewardDistribution(p.Closed),
		Rejected:    rejected,
	}
}
