package marketdata

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

func TestSimulateSource_ProducesPositivePrices(t *testing.T) {
	source := NewSimulateSource(decimal.NewFromInt(50000), 42)
	pair := domain.Pair{From: "BTC", To: "USDT"}

	prev := decimal.Zero
	for i := 0; i < 50; i++ {
		sample, err := source.FetchSample(context.Background(), pair)
		require.NoError(t, err)
		assert.True(t, sample.Close.GreaterThan(decimal.Zero))
		assert.True(t, sample.High.GreaterThanOrEqual(sample.Low))
		if i > 0 {
			// the walk opens where the previous step closed
			assert.True(t, sample.Open.Equal(prev))
		}
		prev = sample.Close
	}
}

func TestSimulateSource_CancelledContext(t *testing.T) {
	source := NewSimulateSource(decimal.NewFromInt(100), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.FetchSample(ctx, domain.Pair{From: "BTC", To: "USDT"})
	assert.Error(t, err)
}
