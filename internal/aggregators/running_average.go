package aggregators

import (
	"math"

	"github.com/shopspring/decimal"
)

// RunningAverage accumulates a count and an exact decimal sum of measurements.
// The zero value is ready to use. It is not safe for concurrent use.
type RunningAverage struct {
	sum   decimal.Decimal
	count int64
}

// Add records v. A nil, NaN or infinite value is not a measurement and is ignored.
func (a *RunningAverage) Add(v *float64) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	a.sum = a.sum.Add(decimal.NewFromFloat(*v))
	a.count++
}

// Average returns sum/count, or nil when nothing was measured.
func (a *RunningAverage) Average() *float64 {
	if a.count == 0 {
		return nil
	}
	avg, _ := a.sum.Div(decimal.NewFromInt(a.count)).Float64()
	return &avg
}

func (a *RunningAverage) Sum() float64 {
	sum, _ := a.sum.Float64()
	return sum
}

func (a *RunningAverage) Count() int64 {
	return a.count
}
