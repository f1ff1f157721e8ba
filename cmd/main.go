// Command crossbot runs a paper-trading bot driven by a moving-average
// crossover signal. It polls a market data source at a fixed interval,
// keeps a bounded sample history and simulates buys and sells against a
// virtual capital balance.
//
// Usage:
//
//	crossbot setup            (interactive config wizard)
//	crossbot --config config.yaml
//	crossbot                  (uses CLI arguments, simulate platform by default)
//
// Optional environment variables for authenticated exchange access:
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/crossbot/config"
	"github.com/vadiminshakov/crossbot/internal"
	"github.com/vadiminshakov/crossbot/internal/clients"
	"github.com/vadiminshakov/crossbot/internal/events"
	"github.com/vadiminshakov/crossbot/internal/services/ledger"
	"github.com/vadiminshakov/crossbot/internal/services/marketdata"
	"github.com/vadiminshakov/crossbot/internal/setup"
	"github.com/vadiminshakov/crossbot/internal/web"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI("config.gen.yaml"); err != nil {
			log.Fatal(err)
		}
		return
	}

	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	source, err := newSource(conf)
	if err != nil {
		logger.Fatal("failed to create sample source", zap.Error(err))
	}

	var journal *ledger.Journal
	if conf.JournalDir != "" {
		journal, err = ledger.NewJournal(conf.JournalDir)
		if err != nil {
			logger.Fatal("failed to open trade journal", zap.Error(err))
		}
		defer journal.Close()
	}

	broadcaster := events.NewEvaluationBroadcaster(256)

	bot, err := internal.NewTradingBot(conf, source, journal, broadcaster, logger)
	if err != nil {
		logger.Fatal("failed to create trading bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})
	if conf.WebAddr != "" {
		srv := web.NewServer(conf.WebAddr, bot, broadcaster)
		g.Go(func() error {
			logger.Info("starting dashboard", zap.String("addr", conf.WebAddr))
			return srv.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot stopped with error", zap.Error(err))
	}

	reportSummary(logger, bot)
}

func newSource(conf config.Config) (marketdata.SampleSource, error) {
	switch conf.Platform {
	case "binance":
		client := clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		return marketdata.NewBinanceSource(client), nil
	case "bybit":
		client := clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		return marketdata.NewBybitSource(client), nil
	case "simulate":
		return marketdata.NewSimulateSource(decimal.NewFromInt(50000), time.Now().UnixNano()), nil
	default:
		return nil, errors.Errorf("unsupported platform: %s", conf.Platform)
	}
}

func reportSummary(logger *zap.Logger, bot *internal.TradingBot) {
	summary := bot.Summary()
	logger.Info("final summary",
		zap.String("portfolio_value", summary.PortfolioValue.String()),
		zap.String("capital", summary.Capital.String()),
		zap.String("position", summary.Position.String()),
		zap.String("last_price", summary.LastPrice.String()),
		zap.Int("trades", len(summary.Trades)))

	for _, trade := range summary.Trades {
		logger.Info("trade",
			zap.String("id", trade.ID),
			zap.Time("ts", trade.Timestamp),
			zap.String("side", trade.Side.String()),
			zap.String("price", trade.Price.String()),
			zap.String("quantity", trade.Quantity.String()),
			zap.String("capital_after", trade.CapitalAfter.String()),
			zap.String("position_after", trade.PositionAfter.String()),
			zap.Int64("latency_ms", trade.LatencyMs),
			zap.String("volume_24h", trade.Volume24h.String()),
			zap.String("volatility_pct", trade.VolatilityPct.String()),
			zap.String("regime", trade.Regime.String()))
	}
}
