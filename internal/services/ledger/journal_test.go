package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

func testTrade(id string, side domain.Action) domain.Trade {
	return domain.Trade{
		ID:            id,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Pair:          "BTC_USDT",
		Side:          side,
		Price:         decimal.NewFromInt(100),
		Quantity:      decimal.NewFromInt(10),
		CapitalAfter:  decimal.NewFromInt(9000),
		PositionAfter: decimal.NewFromInt(10),
		LatencyMs:     25,
		Volume24h:     decimal.NewFromInt(1000),
		VolatilityPct: decimal.RequireFromString("1.5"),
		Regime:        domain.RegimeBull,
	}
}

func TestJournal_RecordAndRead(t *testing.T) {
	j, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Record(testTrade("t-1", domain.ActionBuy)))
	require.NoError(t, j.Record(testTrade("t-2", domain.ActionSell)))

	trades, err := j.Trades()
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "t-1", trades[0].ID)
	assert.Equal(t, domain.ActionBuy, trades[0].Side)
	assert.Equal(t, "t-2", trades[1].ID)
	assert.Equal(t, domain.ActionSell, trades[1].Side)
	assert.True(t, trades[0].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.RegimeBull, trades[0].Regime)
}

func TestJournal_NilSafe(t *testing.T) {
	var j *Journal

	assert.Error(t, j.Record(testTrade("t-1", domain.ActionBuy)))

	_, err := j.Trades()
	assert.Error(t, err)

	assert.NoError(t, j.Close())
}

func TestLedger_JournalsTrades(t *testing.T) {
	j, err := NewJournal(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	l, err := NewPortfolioLedger(
		domain.Pair{From: "BTC", To: "USDT"},
		decimal.NewFromInt(10000),
		decimal.RequireFromString("0.1"),
		j,
		nil,
	)
	require.NoError(t, err)

	l.Apply(domain.CrossUp, decimal.NewFromInt(100), meta())
	l.Apply(domain.CrossNone, decimal.NewFromInt(100), meta())
	l.Apply(domain.CrossDown, decimal.NewFromInt(120), meta())

	journaled, err := j.Trades()
	require.NoError(t, err)
	require.Len(t, journaled, 2)
	assert.Equal(t, domain.ActionBuy, journaled[0].Side)
	assert.Equal(t, domain.ActionSell, journaled[1].Side)
}
