package analytics

import "sort"

const monthLayout = "2006-01"

// DefaultSymbolLimit caps the symbol leaderboard.
const DefaultSymbolLimit = 10

type MonthlyPnL struct {
	Month    string  `json:"month"`
	PnL      float64 `json:"pnl"`
	Positive bool    `json:"positive"`
}

// MonthlyProfitLoss buckets realized results by calendar month, oldest first.
func MonthlyProfitLoss(closed []Trade) []MonthlyPnL {
	buckets := make(map[string]float64)
	for _, t := range closed {
		buckets[t.Date.Format(monthLayout)] += t.ProfitLoss()
	}

	out := make([]MonthlyPnL, 0, len(buckets))
	for month, pnl := range buckets {
		pnl = finite(pnl)
		out = append(out, MonthlyPnL{Month: month, PnL: pnl, Positive: pnl >= 0})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

type SymbolStat struct {
	Symbol string  `json:"symbol"`
	Trades int     `json:"trades"`
	PnL    float64 `json:"pnl"`
	AvgPnL float64 `json:"avg_pnl"`
}

// SymbolPerformance ranks symbols by realized result, best first, keeping at
// most limit entries. A limit of zero or less keeps everything.
func SymbolPerformance(closed []Trade, limit int) []SymbolStat {
	index := make(map[string]int)
	var out []SymbolStat
	for _, t := range closed {
		i, ok := index[t.Symbol]
		if !ok {
			i = len(out)
			index[t.Symbol] = i
			out = append(out, SymbolStat{Symbol: t.Symbol})
		}
		out[i].Trades++
		out[i].PnL += t.ProfitLoss()
	}

	for i := range out {
		out[i].PnL = finite(out[i].PnL)
		out[i].AvgPnL = out[i].PnL / float64(out[i].Trades)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PnL != out[j].PnL {
			return out[i].PnL > out[j].PnL
		}
		return out[i].Symbol < out[j].Symbol
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type RiskRewardStat struct {
	Ratio      RiskReward `json:"ratio"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"`
}

// RiskRewardDistribution counts closed trades per declared ratio. Percentages
// are relative to every closed trade, including those without a ratio.
func RiskRewardDistribution(closed []Trade) []RiskRewardStat {
	counts := make(map[RiskReward]int)
	for _, t := range closed {
		if t.RiskReward != RiskRewardNone {
			counts[t.RiskReward]++
		}
	}

	var out []RiskRewardStat
	for _, ratio := range []RiskReward{RiskReward1To1, RiskReward1To2, RiskReward1To3, RiskReward1To5} {
		if n := counts[ratio]; n > 0 {
			out = append(out, RiskRewardStat{
				Ratio:      ratio,
				Count:      n,
				Percentage: percent(float64(n), float64(len(closed))),
			})
		}
	}
	return out
}
