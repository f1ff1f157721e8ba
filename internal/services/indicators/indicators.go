// Package indicators derives moving averages and volatility from a sample
// window. It uses the cinar/indicator library for the SMA computation.
//
// Averages are recomputed from the supplied snapshot on every call; no
// incremental state is carried between evaluations.
package indicators

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"
)

// SMAPair holds the short and long simple moving averages at one index.
type SMAPair struct {
	Short decimal.Decimal
	Long  decimal.Decimal
}

// Snapshot holds indicator values derived from one buffer snapshot.
// It is recomputed per evaluation and never stored.
type Snapshot struct {
	// SMA short/long averages at the latest index.
	SMA SMAPair
	// Defined reports whether both averages exist at the latest index,
	// i.e. the window holds at least longWindow closes.
	Defined bool
	// VolatilityPct absolute percent move of the close over the long
	// lookback. Zero when fewer than longWindow+1 closes exist or the
	// reference close is zero (division-by-zero degrades to "unknown").
	VolatilityPct decimal.Decimal
}

// Compute derives the indicator snapshot for the given closes.
func Compute(closes []decimal.Decimal, shortWindow, longWindow int) Snapshot {
	snap := Snapshot{VolatilityPct: Volatility(closes, longWindow)}

	shortSeries, okShort := SMASeries(closes, shortWindow)
	longSeries, okLong := SMASeries(closes, longWindow)
	if !okShort || !okLong {
		return snap
	}

	snap.SMA = SMAPair{
		Short: shortSeries[len(shortSeries)-1],
		Long:  longSeries[len(longSeries)-1],
	}
	snap.Defined = true
	return snap
}

// SMASeries computes the simple moving average series for the given period.
// Element i of the result is the mean of the period closes ending at input
// index period-1+i. Returns false when fewer than period closes exist.
func SMASeries(closes []decimal.Decimal, period int) ([]decimal.Decimal, bool) {
	if period < 1 || len(closes) < period {
		return nil, false
	}

	sma := trend.NewSmaWithPeriod[float64](period)
	out := helper.ChanToSlice(sma.Compute(helper.SliceToChan(decimalsToFloat64(closes))))
	if len(out) == 0 {
		return nil, false
	}
	return float64ToDecimals(out), true
}

// Volatility returns abs((close[last] - close[last-longWindow]) / close[last-longWindow]) * 100.
// Zero when fewer than longWindow+1 closes exist or the reference close is zero.
func Volatility(closes []decimal.Decimal, longWindow int) decimal.Decimal {
	if longWindow < 1 || len(closes) < longWindow+1 {
		return decimal.Zero
	}

	last := closes[len(closes)-1]
	ref := closes[len(closes)-1-longWindow]
	if ref.IsZero() {
		return decimal.Zero
	}

	return last.Sub(ref).Div(ref).Abs().Mul(decimal.NewFromInt(100))
}

// decimalsToFloat64 converts a slice of decimal.Decimal to []float64.
func decimalsToFloat64(decimals []decimal.Decimal) []float64 {
	result := make([]float64, len(decimals))
	for i, d := range decimals {
		result[i], _ = d.Float64()
	}
	return result
}

// float64ToDecimals converts a slice of float64 to []decimal.Decimal.
func float64ToDecimals(floats []float64) []decimal.Decimal {
	result := make([]decimal.Decimal, len(floats))
	for i, f := range floats {
		result[i] = decimal.NewFromFloat(f)
	}
	return result
}
