// Package ledger holds the simulated capital/position state and applies
// buy/sell/hold effects, recording the trade history.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"go.uber.org/zap"
)

// EvalMeta carries the evaluation inputs recorded on every trade.
type EvalMeta struct {
	Timestamp     time.Time
	Latency       time.Duration
	Volume24h     decimal.Decimal
	VolatilityPct decimal.Decimal
	Regime        domain.Regime
}

// PortfolioLedger tracks quote capital and the base position for a single
// pair, applying crossover signals as simulated fills at the observed price.
//
// The ledger is not internally synchronized: it is owned by the trading
// loop and mutated only under its lock, as one critical section with the
// sample buffer.
type PortfolioLedger struct {
	pair         domain.Pair
	capital      decimal.Decimal
	baseHeld     decimal.Decimal
	positionSize decimal.Decimal
	trades       []domain.Trade
	journal      *Journal
	logger       *zap.Logger
}

// NewPortfolioLedger creates a ledger with the given starting capital and
// position-size fraction (0 < positionSize <= 1). journal may be nil to
// disable the on-disk audit log.
func NewPortfolioLedger(pair domain.Pair, initialCapital, positionSize decimal.Decimal, journal *Journal, logger *zap.Logger) (*PortfolioLedger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initialCapital.LessThanOrEqual(decimal.Zero) {
		return nil, errors.Errorf("initial capital must be positive, got %s", initialCapital.String())
	}
	if positionSize.LessThanOrEqual(decimal.Zero) || positionSize.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errors.Errorf("position size must be in (0, 1], got %s", positionSize.String())
	}

	return &PortfolioLedger{
		pair:         pair,
		capital:      initialCapital,
		baseHeld:     decimal.Zero,
		positionSize: positionSize,
		journal:      journal,
		logger:       logger,
	}, nil
}

// Apply maps a crossover signal onto the current state. It returns the
// resulting action and, for BUY/SELL, the single trade record appended to
// the history. HOLD mutates nothing and appends nothing.
//
// Repeated CrossUp signals keep buying while capital remains (pyramiding
// into an existing position is allowed). CrossDown liquidates the full
// position; there are no partial sells.
func (l *PortfolioLedger) Apply(cross domain.Crossover, price decimal.Decimal, meta EvalMeta) (domain.Action, *domain.Trade) {
	switch {
	case cross == domain.CrossUp && l.capital.GreaterThan(decimal.Zero):
		return domain.ActionBuy, l.buy(price, meta)
	case cross == domain.CrossDown && l.baseHeld.GreaterThan(decimal.Zero):
		return domain.ActionSell, l.sell(price, meta)
	default:
		return domain.ActionHold, nil
	}
}

func (l *PortfolioLedger) buy(price decimal.Decimal, meta EvalMeta) *domain.Trade {
	qty := l.capital.Mul(l.positionSize).Div(price)
	l.capital = l.capital.Sub(qty.Mul(price))
	l.baseHeld = l.baseHeld.Add(qty)

	trade := l.record(domain.ActionBuy, price, qty, meta)
	l.logger.Info("simulated buy executed",
		zap.String("id", trade.ID),
		zap.String("quantity", qty.String()),
		zap.String("price", price.String()),
		zap.String("capital", l.capital.String()))
	return trade
}

func (l *PortfolioLedger) sell(price decimal.Decimal, meta EvalMeta) *domain.Trade {
	qty := l.baseHeld
	l.capital = l.capital.Add(qty.Mul(price))
	l.baseHeld = decimal.Zero

	trade := l.record(domain.ActionSell, price, qty, meta)
	l.logger.Info("simulated sell executed",
		zap.String("id", trade.ID),
		zap.String("quantity", qty.String()),
		zap.String("price", price.String()),
		zap.String("capital", l.capital.String()))
	return trade
}

func (l *PortfolioLedger) record(side domain.Action, price, qty decimal.Decimal, meta EvalMeta) *domain.Trade {
	trade := domain.Trade{
		ID:            uuid.New().String(),
		Timestamp:     meta.Timestamp,
		Pair:          l.pair.String(),
		Side:          side,
		Price:         price,
		Quantity:      qty,
		CapitalAfter:  l.capital,
		PositionAfter: l.baseHeld,
		LatencyMs:     meta.Latency.Milliseconds(),
		Volume24h:     meta.Volume24h,
		VolatilityPct: meta.VolatilityPct,
		Regime:        meta.Regime,
	}
	l.trades = append(l.trades, trade)

	if l.journal != nil {
		if err := l.journal.Record(trade); err != nil {
			l.logger.Warn("failed to journal trade", zap.String("id", trade.ID), zap.Error(err))
		}
	}
	return &trade
}

// Capital returns the current quote capital.
func (l *PortfolioLedger) Capital() decimal.Decimal {
	return l.capital
}

// BaseHeld returns the current base asset position.
func (l *PortfolioLedger) BaseHeld() decimal.Decimal {
	return l.baseHeld
}

// PortfolioValue returns capital plus the position valued at price.
func (l *PortfolioLedger) PortfolioValue(price decimal.Decimal) decimal.Decimal {
	return l.capital.Add(l.baseHeld.Mul(price))
}

// Trades returns a copy of the trade history in execution order.
func (l *PortfolioLedger) Trades() []domain.Trade {
	out := make([]domain.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}
