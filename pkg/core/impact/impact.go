// Package impact computes the financial impact of a proposed personnel
// expense adjustment.
package impact

import (
	"errors"
	"math"
)

// ErrNotNumeric is returned when an input is NaN or infinite. The caller must
// not render a report from figures it never received.
var ErrNotNumeric = errors.New("impact: input is not a finite number")

// ErrNegativeExpense is returned for a negative baseline expense.
var ErrNegativeExpense = errors.New("impact: baseline expense must be non-negative")

// Figures is the computed projection. Annual is always exactly 12x Monthly.
type Figures struct {
	Percentage      float64 `json:"percentage"`
	BaselineExpense float64 `json:"baseline_expense"`
	Monthly         float64 `json:"monthly_impact"`
	Annual          float64 `json:"annual_impact"`
}

// Calculate projects the monthly and annual impact of applying percent
// (parts per hundred) to a baseline monthly expense. No compounding, no
// rounding; formatting is a display concern.
func Calculate(expense, percent float64) (Figures, error) {
	if !isFinite(expense) || !isFinite(percent) {
		return Figures{}, ErrNotNumeric
	}
	if expense < 0 {
		return Figures{}, ErrNegativeExpense
	}
	monthly := expense * (percent / 100)
	return Figures{
		Percentage:      percent,
		BaselineExpense: expense,
		Monthly:         monthly,
		Annual:          monthly * 12,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
