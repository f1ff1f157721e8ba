package indicators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestSMASeries_MatchesArithmeticMean(t *testing.T) {
	closes := decimals(1, 2, 3, 4, 5)

	series, ok := SMASeries(closes, 3)
	require.True(t, ok)
	require.Len(t, series, 3)

	// means of (1,2,3), (2,3,4), (3,4,5)
	expected := []float64{2, 3, 4}
	for i, want := range expected {
		got, _ := series[i].Float64()
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestSMASeries_UndefinedBelowWindow(t *testing.T) {
	_, ok := SMASeries(decimals(1, 2), 3)
	assert.False(t, ok)

	_, ok = SMASeries(nil, 3)
	assert.False(t, ok)
}

func TestCompute_DefinedPair(t *testing.T) {
	closes := make([]decimal.Decimal, 0, 21)
	for i := 0; i < 21; i++ {
		closes = append(closes, decimal.NewFromInt(100))
	}

	snap := Compute(closes, 5, 20)
	require.True(t, snap.Defined)

	short, _ := snap.SMA.Short.Float64()
	long, _ := snap.SMA.Long.Float64()
	assert.InDelta(t, 100, short, 1e-9)
	assert.InDelta(t, 100, long, 1e-9)
	assert.True(t, snap.VolatilityPct.IsZero())
}

func TestCompute_UndefinedBelowLongWindow(t *testing.T) {
	snap := Compute(decimals(1, 2, 3, 4, 5, 6), 5, 20)
	assert.False(t, snap.Defined)
	assert.True(t, snap.VolatilityPct.IsZero())
}

func TestVolatility(t *testing.T) {
	// 21 closes, reference is the first one
	closes := make([]decimal.Decimal, 0, 21)
	closes = append(closes, decimal.NewFromInt(100))
	for i := 0; i < 19; i++ {
		closes = append(closes, decimal.NewFromInt(110))
	}
	closes = append(closes, decimal.NewFromInt(150))

	vol := Volatility(closes, 20)
	got, _ := vol.Float64()
	assert.InDelta(t, 50, got, 1e-9) // abs((150-100)/100)*100

	// negative moves are reported as absolute values
	closes[len(closes)-1] = decimal.NewFromInt(50)
	vol = Volatility(closes, 20)
	got, _ = vol.Float64()
	assert.InDelta(t, 50, got, 1e-9)
}

func TestVolatility_InsufficientHistory(t *testing.T) {
	closes := decimals(100, 110, 120)
	assert.True(t, Volatility(closes, 20).IsZero())
}

func TestVolatility_ZeroReferenceClose(t *testing.T) {
	closes := make([]decimal.Decimal, 0, 21)
	closes = append(closes, decimal.Zero)
	for i := 0; i < 20; i++ {
		closes = append(closes, decimal.NewFromInt(100))
	}

	// division by zero degrades to zero volatility
	assert.True(t, Volatility(closes, 20).IsZero())
}
