package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T, capital string) *PortfolioLedger {
	t.Helper()
	l, err := NewPortfolioLedger(
		domain.Pair{From: "BTC", To: "USDT"},
		decimal.RequireFromString(capital),
		decimal.RequireFromString("0.1"),
		nil,
		zap.NewNop(),
	)
	require.NoError(t, err)
	return l
}

func meta() EvalMeta {
	return EvalMeta{
		Timestamp:     time.Now(),
		Latency:       25 * time.Millisecond,
		Volume24h:     decimal.NewFromInt(1000),
		VolatilityPct: decimal.NewFromFloat(1.5),
		Regime:        domain.RegimeBull,
	}
}

func TestNewPortfolioLedger_Validation(t *testing.T) {
	pair := domain.Pair{From: "BTC", To: "USDT"}

	_, err := NewPortfolioLedger(pair, decimal.Zero, decimal.RequireFromString("0.1"), nil, nil)
	assert.Error(t, err)

	_, err = NewPortfolioLedger(pair, decimal.NewFromInt(100), decimal.Zero, nil, nil)
	assert.Error(t, err)

	_, err = NewPortfolioLedger(pair, decimal.NewFromInt(100), decimal.NewFromInt(2), nil, nil)
	assert.Error(t, err)
}

func TestApply_BuyThenSell(t *testing.T) {
	l := newTestLedger(t, "10000")

	// buy at 100: qty = 10000*0.1/100 = 10
	action, trade := l.Apply(domain.CrossUp, decimal.NewFromInt(100), meta())
	require.Equal(t, domain.ActionBuy, action)
	require.NotNil(t, trade)
	assert.True(t, trade.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, l.Capital().Equal(decimal.NewFromInt(9000)))
	assert.True(t, l.BaseHeld().Equal(decimal.NewFromInt(10)))

	// sell at 120: full liquidation
	action, trade = l.Apply(domain.CrossDown, decimal.NewFromInt(120), meta())
	require.Equal(t, domain.ActionSell, action)
	require.NotNil(t, trade)
	assert.True(t, trade.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, l.Capital().Equal(decimal.NewFromInt(10200))) // 9000 + 10*120
	assert.True(t, l.BaseHeld().IsZero())
}

func TestApply_PyramidingOnRepeatedCrossUp(t *testing.T) {
	l := newTestLedger(t, "10000")
	price := decimal.NewFromInt(100)

	action, _ := l.Apply(domain.CrossUp, price, meta())
	require.Equal(t, domain.ActionBuy, action)
	firstHeld := l.BaseHeld()

	// a second cross up keeps buying while capital remains
	action, _ = l.Apply(domain.CrossUp, price, meta())
	require.Equal(t, domain.ActionBuy, action)
	assert.True(t, l.BaseHeld().GreaterThan(firstHeld))
	assert.True(t, l.Capital().Equal(decimal.NewFromInt(8100))) // 9000 - 900
}

func TestApply_HoldMutatesNothing(t *testing.T) {
	l := newTestLedger(t, "10000")
	price := decimal.NewFromInt(100)

	action, trade := l.Apply(domain.CrossNone, price, meta())
	assert.Equal(t, domain.ActionHold, action)
	assert.Nil(t, trade)
	assert.True(t, l.Capital().Equal(decimal.NewFromInt(10000)))
	assert.True(t, l.BaseHeld().IsZero())
	assert.Empty(t, l.Trades())
}

func TestApply_SellWithoutPositionIsHold(t *testing.T) {
	l := newTestLedger(t, "10000")

	action, trade := l.Apply(domain.CrossDown, decimal.NewFromInt(100), meta())
	assert.Equal(t, domain.ActionHold, action)
	assert.Nil(t, trade)
	assert.Empty(t, l.Trades())
}

func TestTrades_AppendOnlyCount(t *testing.T) {
	l := newTestLedger(t, "10000")
	price := decimal.NewFromInt(100)

	l.Apply(domain.CrossUp, price, meta())   // BUY
	l.Apply(domain.CrossNone, price, meta()) // HOLD
	l.Apply(domain.CrossUp, price, meta())   // BUY
	l.Apply(domain.CrossDown, price, meta()) // SELL
	l.Apply(domain.CrossDown, price, meta()) // HOLD (no position)

	trades := l.Trades()
	require.Len(t, trades, 3)
	assert.Equal(t, domain.ActionBuy, trades[0].Side)
	assert.Equal(t, domain.ActionBuy, trades[1].Side)
	assert.Equal(t, domain.ActionSell, trades[2].Side)

	// returned slice is a copy
	trades[0].Side = domain.ActionSell
	assert.Equal(t, domain.ActionBuy, l.Trades()[0].Side)
}

func TestPortfolioValue(t *testing.T) {
	l := newTestLedger(t, "10000")
	price := decimal.NewFromInt(100)

	l.Apply(domain.CrossUp, price, meta())
	// 9000 capital + 10 held * 110
	value := l.PortfolioValue(decimal.NewFromInt(110))
	assert.True(t, value.Equal(decimal.NewFromInt(10100)))
}
