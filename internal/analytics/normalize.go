package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar date format trades are journaled with.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Rejection reports a raw trade that was dropped during normalization.
type Rejection struct {
	TradeID string `json:"trade_id"`
	Index   int    `json:"index"`
	Reason  string `json:"reason"`
}

// Normalize validates raw trades and coerces them into Trade values. Invalid
// entries are reported as rejections and left out; input order is preserved.
func Normalize(raw []RawTrade) ([]Trade, []Rejection) {
	trades := make([]Trade, 0, len(raw))
	var rejected []Rejection

	for i, r := range raw {
		t, err := normalizeTrade(r)
		if err != nil {
			rejected = append(rejected, Rejection{TradeID: r.ID, Index: i, Reason: err.Error()})
			continue
		}
		trades = append(trades, t)
	}

	return trades, rejected
}

func normalizeTrade(r RawTrade) (Trade, error) {
	quantity, err := requiredPositive("quantity", r.Quantity)
	if err != nil {
		return Trade{}, err
	}
	entryPrice, err := requiredPositive("entry_price", r.EntryPrice)
	if err != nil {
		return Trade{}, err
	}

	date, err := ParseDate(r.Date)
	if err != nil {
		return Trade{}, err
	}

	action := Action(strings.ToLower(strings.TrimSpace(r.Action)))
	switch action {
	case ActionBuy, ActionSell:
	case "":
		action = ActionBuy
	default:
		return Trade{}, fmt.Errorf("unknown action %q", r.Action)
	}

	rr := RiskReward(strings.TrimSpace(r.RiskRewardRatio))
	if !rr.Valid() {
		return Trade{}, fmt.Errorf("unknown risk reward ratio %q", r.RiskRewardRatio)
	}

	t := Trade{
		ID:               r.ID,
		AccountID:        r.AccountID,
		Symbol:           strings.ToUpper(strings.TrimSpace(r.Symbol)),
		Action:           action,
		Quantity:         quantity,
		EntryPrice:       entryPrice,
		TakeProfitAmount: optionalLevel(r.TakeProfitAmount),
		StopLossAmount:   optionalLevel(r.StopLossAmount),
		Date:             date,
		Notes:            r.Notes,
		RiskReward:       rr,
	}

	switch Status(strings.ToLower(strings.TrimSpace(r.Status))) {
	case StatusOpen, "":
		// exit fields on an open trade are ignored
	case StatusClosed:
		t.Closing = &Closing{
			ExitPrice:  optionalLevel(r.ExitPrice),
			ProfitLoss: finiteOrZero(r.ProfitLoss),
		}
	default:
		return Trade{}, fmt.Errorf("unknown status %q", r.Status)
	}

	return t, nil
}

// ParseDate accepts a calendar date or a timestamp and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func requiredPositive(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%s is required", field)
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, fmt.Errorf("%s is not a number", field)
	}
	if *v <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return *v, nil
}

// optionalLevel drops missing, zero and non-finite price levels. A zero
// price counts as not set.
func optionalLevel(v *float64) *float64 {
	v = optionalFinite(v)
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func optionalFinite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	out := *v
	return &out
}

func finiteOrZero(v *float64) float64 {
	if v = optionalFinite(v); v == nil {
		return 0
	}
	return *v
}
