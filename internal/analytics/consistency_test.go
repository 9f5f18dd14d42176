package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistencyScore(t *testing.T) {
	disciplined := Trade{
		ID:               "disciplined",
		Quantity:         10,
		EntryPrice:       50,
		TakeProfitAmount: ptr(55),
		StopLossAmount:   ptr(48),
		Date:             mustDate("2025-01-01"),
		Notes:            strings.Repeat("n", 20),
		Closing:          &Closing{ExitPrice: ptr(55), ProfitLoss: 50},
	}

	tests := []struct {
		name       string
		trades     []Trade
		balance    float64
		wantPoints int
		wantMax    int
		wantScore  int
	}{
		{
			name:    "no trades",
			balance: 10000,
		},
		{
			name:       "fully disciplined closed trade",
			trades:     []Trade{disciplined},
			balance:    10000,
			wantPoints: 100,
			wantMax:    100,
			wantScore:  100,
		},
		{
			name: "exit within tolerance of stop loss",
			trades: []Trade{func() Trade {
				tr := disciplined
				tr.Closing = &Closing{ExitPrice: ptr(48.5), ProfitLoss: -15}
				return tr
			}()},
			balance:    10000,
			wantPoints: 100,
			wantMax:    100,
			wantScore:  100,
		},
		{
			name: "profitable off-plan exit earns partial credit",
			trades: []Trade{func() Trade {
				tr := disciplined
				tr.Closing = &Closing{ExitPrice: ptr(53), ProfitLoss: 30}
				return tr
			}()},
			balance:    10000,
			wantPoints: 85,
			wantMax:    100,
			wantScore:  85,
		},
		{
			name: "losing off-plan exit earns nothing for execution",
			trades: []Trade{func() Trade {
				tr := disciplined
				tr.Closing = &Closing{ExitPrice: ptr(47), ProfitLoss: -30}
				return tr
			}()},
			balance:    10000,
			wantPoints: 70,
			wantMax:    100,
			wantScore:  70,
		},
		{
			name: "open trade is not scored on execution",
			trades: []Trade{{
				Quantity:   1,
				EntryPrice: 100,
				Date:       mustDate("2025-01-01"),
				Notes:      "short",
			}},
			balance:    10000,
			wantPoints: 20,
			wantMax:    70,
			wantScore:  29,
		},
		{
			name: "closed trade without exit price is not scored on execution",
			trades: []Trade{{
				Quantity:   1,
				EntryPrice: 100,
				Date:       mustDate("2025-01-01"),
				Closing:    &Closing{ProfitLoss: 10},
			}},
			balance:    10000,
			wantPoints: 20,
			wantMax:    70,
			wantScore:  29,
		},
		{
			name: "oversized position and exactly ten character notes",
			trades: []Trade{{
				Quantity:   11,
				EntryPrice: 100,
				Date:       mustDate("2025-01-01"),
				Notes:      "0123456789",
			}},
			balance:    10000,
			wantPoints: 0,
			wantMax:    70,
			wantScore:  0,
		},
		{
			name: "emoji notes count two units per character",
			trades: []Trade{{
				Quantity:   11,
				EntryPrice: 100,
				Date:       mustDate("2025-01-01"),
				Notes:      strings.Repeat("\U0001F642", 6),
			}},
			balance:    10000,
			wantPoints: 25,
			wantMax:    70,
			wantScore:  36,
		},
		{
			name: "ten accented letters are not longer than ten",
			trades: []Trade{{
				Quantity:   11,
				EntryPrice: 100,
				Date:       mustDate("2025-01-01"),
				Notes:      strings.Repeat("\u00e9", 10),
			}},
			balance:    10000,
			wantPoints: 0,
			wantMax:    70,
			wantScore:  0,
		},
		{
			name: "position at exactly ten percent earns sizing points",
			trades: []Trade{{
				Quantity:   10,
				EntryPrice: 100,
				Date:       mustDate("2025-01-01"),
			}},
			balance:    10000,
			wantPoints: 20,
			wantMax:    70,
			wantScore:  29,
		},
		{
			name: "zero balance earns no sizing points",
			trades: []Trade{{
				Quantity:   1,
				EntryPrice: 1,
				Date:       mustDate("2025-01-01"),
			}},
			balance:    0,
			wantPoints: 0,
			wantMax:    70,
			wantScore:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConsistencyScore(tt.trades, tt.balance)
			assert.Equal(t, tt.wantPoints, got.Points)
			assert.Equal(t, tt.wantMax, got.MaxPoints)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}
