package dto

import (
	"encoding/json"
	"testing"
	"time"

	"trading-journal/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsResponse_LargeValuesMarshal(t *testing.T) {
	huge := 1e307
	qty, entry := 1.0, 100.0
	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	report := analytics.Compute(analytics.Input{
		Account: analytics.Account{
			ID:             "1",
			InitialDeposit: 10000,
			CurrentBalance: 1e-310,
			CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Trades: []analytics.RawTrade{
			{ID: "o", Symbol: "AAPL", Action: "buy", Quantity: &qty, EntryPrice: &entry, Date: "2025-06-02", Status: "open"},
			{ID: "c", Symbol: "EURUSD", Action: "buy", Quantity: &qty, EntryPrice: &entry, Date: "2025-06-01", Status: "closed", ProfitLoss: &huge},
		},
		Window: analytics.WindowAll,
		Now:    now,
	})

	resp := NewMetricsResponse(report)
	assert.Equal(t, 1e307, resp.TotalProfitLoss)
	assert.Zero(t, resp.CapitalUsedPercentage)

	_, err := json.Marshal(resp)
	require.NoError(t, err)
}
