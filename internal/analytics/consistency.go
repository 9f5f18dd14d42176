package analytics

import (
	"math"
	"unicode/utf16"
)

const (
	riskManagementPoints = 25
	positionSizingPoints = 20
	planExecutionPoints  = 30
	planPartialPoints    = 15
	documentationPoints  = 25

	// MaxPositionShare is the largest position, as a share of the current
	// balance, that still earns the sizing points.
	MaxPositionShare = 0.10
	// PlanPriceTolerance is how far an exit may sit from TP or SL and still
	// count as executed to plan.
	PlanPriceTolerance = 0.5
	// MinNotesLength is the note length, in UTF-16 code units, a trade must
	// exceed to count as documented.
	MinNotesLength = 10
)

// ConsistencyBreakdown is the raw rubric tally behind a consistency score.
type ConsistencyBreakdown struct {
	Points    int `json:"points"`
	MaxPoints int `json:"max_points"`
	Score     int `json:"score"`
}

// ConsistencyScore rates risk-management discipline over trades on a 0 to 100
// scale. Closed trades without an exit price are not scored on execution.
func ConsistencyScore(trades []Trade, currentBalance float64) ConsistencyBreakdown {
	var b ConsistencyBreakdown
	for _, t := range trades {
		points, maxPoints := scoreTrade(t, currentBalance)
		b.Points += points
		b.MaxPoints += maxPoints
	}
	if b.MaxPoints > 0 {
		b.Score = int(math.Round(100 * float64(b.Points) / float64(b.MaxPoints)))
	}
	return b
}

func scoreTrade(t Trade, currentBalance float64) (points, maxPoints int) {
	if t.TakeProfitAmount != nil && t.StopLossAmount != nil {
		points += riskManagementPoints
	}
	maxPoints += riskManagementPoints

	if currentBalance > 0 && t.PositionValue()/currentBalance <= MaxPositionShare {
		points += positionSizingPoints
	}
	maxPoints += positionSizingPoints

	if t.Closing != nil && t.Closing.ExitPrice != nil {
		exit := *t.Closing.ExitPrice
		switch {
		case near(exit, t.TakeProfitAmount), near(exit, t.StopLossAmount):
			points += planExecutionPoints
		case t.Closing.ProfitLoss > 0:
			points += planPartialPoints
		}
		maxPoints += planExecutionPoints
	}

	if notesLength(t.Notes) > MinNotesLength {
		points += documentationPoints
	}
	maxPoints += documentationPoints

	return points, maxPoints
}

// notesLength counts UTF-16 code units, so characters outside the basic
// multilingual plane such as emoji count twice.
func notesLength(notes string) int {
	return len(utf16.Encode([]rune(notes)))
}

func near(price float64, level *float64) bool {
	return level != nil && math.Abs(price-*level) <= PlanPriceTolerance
}
