package analytics

import (
	"fmt"
	"time"
)

// Window is a look-back range selector.
type Window string

const (
	Window7D  Window = "7d"
	Window30D Window = "30d"
	Window90D Window = "90d"
	Window1Y  Window = "1y"
	WindowAll Window = "all"
)

func Windows() []Window {
	return []Window{Window7D, Window30D, Window90D, Window1Y, WindowAll}
}

// ParseWindow maps a range selector to a Window. Unknown values are an error.
func ParseWindow(s string) (Window, error) {
	w := Window(s)
	for _, known := range Windows() {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Cutoff returns the earliest trade date included by the window. The second
// result is false for WindowAll, which has no lower bound.
func (w Window) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case Window7D:
		return now.AddDate(0, 0, -7), true
	case Window30D:
		return now.AddDate(0, 0, -30), true
	case Window90D:
		return now.AddDate(0, 0, -90), true
	case Window1Y:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// Partition is a window's trades split by status. Both slices keep the
// relative order of the input.
type Partition struct {
	All    []Trade
	Closed []Trade
	Open   []Trade
}

// FilterWindow keeps the trades dated on or after the window cutoff.
func FilterWindow(trades []Trade, w Window, now time.Time) []Trade {
	cutoff, bounded := w.Cutoff(now)
	if !bounded {
		return trades
	}

	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if !t.Date.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// Split partitions trades into closed and open positions.
func Split(trades []Trade) Partition {
	p := Partition{All: trades}
	for _, t := range trades {
		if t.IsClosed() {
			p.Closed = append(p.Closed, t)
		} else {
			p.Open = append(p.Open, t)
		}
	}
	return p
}
