package analytics

import "math"

// Summary holds the aggregate metrics of a window. Values are unrounded.
type Summary struct {
	ClosedTrades          int
	OpenTrades            int
	WinningTrades         int
	LosingTrades          int
	TotalProfitLoss       float64
	WinRate               float64
	AvgWin                float64
	AvgLoss               float64
	ProfitFactor          float64
	TotalInvested         float64
	AccountValue          float64
	ReturnPercentage      float64
	SharpeRatio           float64
	CapitalUsedPercentage float64
}

// Summarize computes the aggregate metrics over a partition.
//
// A trade is a win only when its profit is strictly positive; break-even
// trades count toward the closed total but are neither wins nor losses.
func Summarize(p Partition, account Account) Summary {
	s := Summary{
		ClosedTrades: len(p.Closed),
		OpenTrades:   len(p.Open),
	}

	var grossWin, grossLoss float64
	for _, t := range p.Closed {
		pl := t.ProfitLoss()
		s.TotalProfitLoss += pl
		switch {
		case pl > 0:
			s.WinningTrades++
			grossWin += pl
		case pl < 0:
			s.LosingTrades++
			grossLoss += pl
		}
	}

	s.WinRate = percent(float64(s.WinningTrades), float64(s.ClosedTrades))
	if s.WinningTrades > 0 {
		s.AvgWin = grossWin / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = math.Abs(grossLoss / float64(s.LosingTrades))
	}
	if s.AvgLoss > 0 {
		s.ProfitFactor = s.AvgWin / s.AvgLoss
	}

	for _, t := range p.Open {
		s.TotalInvested += t.PositionValue()
	}

	s.AccountValue = account.CurrentBalance + s.TotalProfitLoss
	s.ReturnPercentage = percent(s.AccountValue-account.InitialDeposit, account.InitialDeposit)
	s.SharpeRatio = SharpeRatio(p.Closed, account.InitialDeposit)
	s.CapitalUsedPercentage = percent(s.TotalInvested, account.CurrentBalance)

	for _, v := range []*float64{&s.TotalProfitLoss, &s.AvgWin, &s.AvgLoss, &s.ProfitFactor,
		&s.TotalInvested, &s.AccountValue, &s.ReturnPercentage} {
		*v = finite(*v)
	}
	return s
}

// SharpeRatio is the mean per-trade return over its population standard
// deviation, with returns expressed as a percentage of the initial deposit.
// Fewer than two closed trades yield zero.
func SharpeRatio(closed []Trade, initialDeposit float64) float64 {
	n := len(closed)
	if n < 2 || initialDeposit == 0 {
		return 0
	}

	returns := make([]float64, n)
	var sum float64
	for i, t := range closed {
		returns[i] = 100 * t.ProfitLoss() / initialDeposit
		sum += returns[i]
	}
	avg := sum / float64(n)

	var squares float64
	for _, r := range returns {
		squares += (r - avg) * (r - avg)
	}
	stdDev := math.Sqrt(squares / float64(n))
	if stdDev <= 0 {
		return 0
	}
	return finite(avg / stdDev)
}

// percent returns 100*num/den, or zero when den is zero or the quotient
// overflows.
func percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(100 * num / den)
}

// finite maps NaN and the infinities to zero. Sums of very large finite
// inputs can overflow and no metric may carry a non-finite value.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
