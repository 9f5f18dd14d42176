package analytics

import "time"

func ptr(v float64) *float64 {
	return &v
}

func closedRaw(id, date string, pl float64) RawTrade {
	return RawTrade{
		ID:         id,
		Symbol:     "EURUSD",
		Action:     "buy",
		Quantity:   ptr(1),
		EntryPrice: ptr(100),
		Date:       date,
		Status:     "closed",
		ProfitLoss: ptr(pl),
	}
}

func openRaw(id, date string, qty, entry float64) RawTrade {
	return RawTrade{
		ID:         id,
		Symbol:     "AAPL",
		Action:     "buy",
		Quantity:   ptr(qty),
		EntryPrice: ptr(entry),
		Date:       date,
		Status:     "open",
	}
}

func mustDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func closedTrade(id, date string, pl float64) Trade {
	return Trade{
		ID:         id,
		Symbol:     "EURUSD",
		Action:     ActionBuy,
		Quantity:   1,
		EntryPrice: 100,
		Date:       mustDate(date),
		Closing:    &Closing{ProfitLoss: pl},
	}
}

func defaultAccount() Account {
	return Account{
		ID:             "1",
		InitialDeposit: 10000,
		CurrentBalance: 10000,
		CreatedAt:      mustDate("2025-01-01"),
	}
}
