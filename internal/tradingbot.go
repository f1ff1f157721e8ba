package internal

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/crossbot/config"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/internal/events"
	"github.com/vadiminshakov/crossbot/internal/services/detector"
	"github.com/vadiminshakov/crossbot/internal/services/indicators"
	"github.com/vadiminshakov/crossbot/internal/services/ledger"
	"github.com/vadiminshakov/crossbot/internal/services/marketdata"
)

// TradingBot drives the fetch/evaluate loop for a single pair.
//
// A single mutex guards the sample buffer and the ledger as one critical
// section per evaluation, so a concurrent reader (the web dashboard or
// the shutdown summary) never observes a new sample appended with the
// ledger not yet updated. Evaluations are strictly sequential; the loop
// observes cancellation only between atomic evaluation cycles.
type TradingBot struct {
	mu sync.Mutex

	pair        domain.Pair
	shortWindow int
	longWindow  int
	interval    time.Duration

	buffer *marketdata.SampleBuffer
	ledger *ledger.PortfolioLedger
	source marketdata.SampleSource
	events *events.EvaluationBroadcaster
	logger *zap.Logger

	// average pair from the last successful evaluation; the zero pair
	// until one exists, which counts as "not yet crossed".
	prevSMA    indicators.SMAPair
	lastSample domain.Sample
	hasSample  bool
}

// NewTradingBot creates a bot from the configuration. journal may be nil;
// broadcaster may be nil when no consumer is attached.
func NewTradingBot(conf config.Config, source marketdata.SampleSource, journal *ledger.Journal, broadcaster *events.EvaluationBroadcaster, logger *zap.Logger) (*TradingBot, error) {
	if source == nil {
		return nil, errors.New("sample source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	book, err := ledger.NewPortfolioLedger(conf.Pair, conf.InitialCapital, conf.PositionSize, journal, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create portfolio ledger")
	}

	return &TradingBot{
		pair:        conf.Pair,
		shortWindow: conf.ShortWindow,
		longWindow:  conf.LongWindow,
		interval:    conf.UpdateInterval,
		buffer:      marketdata.NewSampleBuffer(conf.LongWindow + 1),
		ledger:      book,
		source:      source,
		events:      broadcaster,
		logger:      logger.With(zap.String("pair", conf.Pair.String())),
	}, nil
}

// Run executes the trading loop until ctx is cancelled. Fetch failures are
// never fatal: the tick is skipped and the next tick is the retry.
func (b *TradingBot) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.logger.Info("starting trading loop",
		zap.Duration("update_interval", b.interval),
		zap.Int("short_window", b.shortWindow),
		zap.Int("long_window", b.longWindow))

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("context done, stopping trading loop")
			return ctx.Err()
		case <-ticker.C:
			started := time.Now()
			sample, err := b.source.FetchSample(ctx, b.pair)
			latency := time.Since(started)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				b.logger.Warn("sample fetch failed, skipping tick",
					zap.Error(err),
					zap.Duration("latency", latency))
				continue
			}

			eval := b.evaluate(sample, latency)
			if b.events != nil {
				b.events.Publish(eval)
			}

			switch eval.Action {
			case domain.ActionWaiting:
				b.logger.Debug("waiting for history",
					zap.String("price", eval.Price),
					zap.Int("samples", b.SampleCount()))
			case domain.ActionHold:
				b.logger.Debug("hold",
					zap.String("price", eval.Price),
					zap.String("portfolio_value", eval.PortfolioValue),
					zap.String("regime", eval.Regime))
			default:
				b.logger.Info("trade executed",
					zap.String("action", eval.Action.String()),
					zap.String("price", eval.Price),
					zap.String("capital", eval.Capital),
					zap.String("position", eval.Position),
					zap.String("volatility_pct", eval.VolatilityPct),
					zap.String("regime", eval.Regime))
			}
		}
	}
}

// evaluate runs one evaluation cycle: append the sample, recompute the
// indicators over a snapshot, classify the transition and apply it to the
// ledger. The whole cycle is one critical section.
func (b *TradingBot) evaluate(sample domain.Sample, latency time.Duration) domain.Evaluation {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buffer.Append(sample)
	b.lastSample = sample
	b.hasSample = true

	closes := marketdata.Closes(b.buffer.Snapshot())
	snap := indicators.Compute(closes, b.shortWindow, b.longWindow)

	eval := domain.Evaluation{
		Timestamp:     sample.Timestamp,
		Pair:          b.pair.String(),
		Price:         sample.Close.String(),
		LatencyMs:     latency.Milliseconds(),
		Volume24h:     sample.Volume.String(),
		VolatilityPct: snap.VolatilityPct.String(),
	}

	cross, regime, err := detector.Evaluate(snap, b.prevSMA, b.buffer.Len(), b.longWindow)
	if err != nil {
		// not a failure: insufficient history is a defined waiting status
		eval.Action = domain.ActionWaiting
		eval.Capital = b.ledger.Capital().String()
		eval.Position = b.ledger.BaseHeld().String()
		eval.PortfolioValue = b.ledger.PortfolioValue(sample.Close).String()
		return eval
	}

	action, _ := b.ledger.Apply(cross, sample.Close, ledger.EvalMeta{
		Timestamp:     sample.Timestamp,
		Latency:       latency,
		Volume24h:     sample.Volume,
		VolatilityPct: snap.VolatilityPct,
		Regime:        regime,
	})
	b.prevSMA = snap.SMA

	eval.Action = action
	eval.Regime = regime.String()
	eval.Capital = b.ledger.Capital().String()
	eval.Position = b.ledger.BaseHeld().String()
	eval.PortfolioValue = b.ledger.PortfolioValue(sample.Close).String()
	return eval
}

// SampleCount returns the current buffer length.
func (b *TradingBot) SampleCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Len()
}

// Summary returns the final portfolio state and the full ordered trade
// log. With an empty buffer the position is valued at zero.
func (b *TradingBot) Summary() domain.PortfolioSummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	lastPrice := decimal.Zero
	if b.hasSample {
		lastPrice = b.lastSample.Close
	}

	return domain.PortfolioSummary{
		Capital:        b.ledger.Capital(),
		Position:       b.ledger.BaseHeld(),
		LastPrice:      lastPrice,
		PortfolioValue: b.ledger.PortfolioValue(lastPrice),
		Trades:         b.ledger.Trades(),
	}
}
