// Package config loads bot configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a YAML field or flag is omitted.
const (
	DefaultInitialCapital = "10000"
	DefaultShortWindow    = 5
	DefaultLongWindow     = 20
	DefaultPositionSize   = "0.1"
	DefaultUpdateInterval = 5 * time.Second
	DefaultJournalDir     = "./wal/trades"
)

// Config holds the runtime configuration of the bot.
type Config struct {
	// Platform market data source: binance, bybit or simulate.
	Platform string
	// Pair single trading pair the bot operates on.
	Pair domain.Pair
	// InitialCapital starting quote capital.
	InitialCapital decimal.Decimal
	// ShortWindow periods for the fast moving average.
	ShortWindow int
	// LongWindow periods for the slow moving average and volatility lookback.
	LongWindow int
	// PositionSize fraction of capital committed per buy, in (0, 1].
	PositionSize decimal.Decimal
	// UpdateInterval wall-clock interval between fetch ticks.
	UpdateInterval time.Duration
	// WebAddr listen address of the dashboard; empty disables it.
	WebAddr string
	// JournalDir directory of the on-disk trade journal; empty disables it.
	JournalDir string
}

type configTmp struct {
	Platform       string        `yaml:"platform"`
	Pair           string        `yaml:"pair"`
	InitialCapital string        `yaml:"initial_capital,omitempty"`
	ShortWindow    int           `yaml:"short_window,omitempty"`
	LongWindow     int           `yaml:"long_window,omitempty"`
	PositionSize   string        `yaml:"position_size,omitempty"`
	UpdateInterval time.Duration `yaml:"update_interval,omitempty"`
	WebAddr        string        `yaml:"web_addr,omitempty"`
	JournalDir     string        `yaml:"journal_dir,omitempty"`
}

// Get loads the configuration. When --config points to a YAML file it is
// used, otherwise the CLI flags apply.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	platform := flag.String("platform", "simulate", "market data source: binance, bybit or simulate")
	pairFlag := flag.String("pair", "BTC_USDT", "trade pair, example: BTC_USDT")
	capitalFlag := flag.String("capital", DefaultInitialCapital, "starting quote capital")
	shortWindow := flag.Int("shortwindow", DefaultShortWindow, "periods for the fast moving average")
	longWindow := flag.Int("longwindow", DefaultLongWindow, "periods for the slow moving average")
	positionSize := flag.String("positionsize", DefaultPositionSize, "fraction of capital committed per buy")
	updateInterval := flag.Duration("updateinterval", DefaultUpdateInterval, "interval between fetch ticks")
	webAddr := flag.String("webaddr", "", "dashboard listen address, empty disables")
	journalDir := flag.String("journaldir", DefaultJournalDir, "trade journal directory, empty disables")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	pair, err := pairFromString(*pairFlag)
	if err != nil {
		return Config{}, err
	}
	capital, err := decimal.NewFromString(*capitalFlag)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --capital provided, --capital=%s", *capitalFlag)
	}
	size, err := decimal.NewFromString(*positionSize)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --positionsize provided, --positionsize=%s", *positionSize)
	}

	conf := Config{
		Platform:       *platform,
		Pair:           pair,
		InitialCapital: capital,
		ShortWindow:    *shortWindow,
		LongWindow:     *longWindow,
		PositionSize:   size,
		UpdateInterval: *updateInterval,
		WebAddr:        *webAddr,
		JournalDir:     *journalDir,
	}
	return conf, conf.validate()
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	pair, err := pairFromString(tmp.Pair)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'pair' param in yaml config: %s, error: %w", tmp.Pair, err)
	}

	conf := Config{
		Platform:       tmp.Platform,
		Pair:           pair,
		ShortWindow:    tmp.ShortWindow,
		LongWindow:     tmp.LongWindow,
		UpdateInterval: tmp.UpdateInterval,
		WebAddr:        tmp.WebAddr,
		JournalDir:     tmp.JournalDir,
	}

	if tmp.InitialCapital == "" {
		tmp.InitialCapital = DefaultInitialCapital
	}
	conf.InitialCapital, err = decimal.NewFromString(tmp.InitialCapital)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'initial_capital' param in yaml config (must be a decimal), error: %w", err)
	}

	if tmp.PositionSize == "" {
		tmp.PositionSize = DefaultPositionSize
	}
	conf.PositionSize, err = decimal.NewFromString(tmp.PositionSize)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'position_size' param in yaml config (must be a decimal), error: %w", err)
	}

	if conf.ShortWindow == 0 {
		conf.ShortWindow = DefaultShortWindow
	}
	if conf.LongWindow == 0 {
		conf.LongWindow = DefaultLongWindow
	}
	if conf.UpdateInterval == 0 {
		conf.UpdateInterval = DefaultUpdateInterval
	}

	return conf, conf.validate()
}

func (c Config) validate() error {
	switch c.Platform {
	case "binance", "bybit", "simulate":
	default:
		return fmt.Errorf("unsupported platform: %s", c.Platform)
	}
	if c.ShortWindow < 1 {
		return fmt.Errorf("short_window must be positive, got %d", c.ShortWindow)
	}
	if c.LongWindow <= c.ShortWindow {
		return fmt.Errorf("long_window must exceed short_window, got %d <= %d", c.LongWindow, c.ShortWindow)
	}
	if c.InitialCapital.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("initial_capital must be positive, got %s", c.InitialCapital.String())
	}
	one := decimal.NewFromInt(1)
	if c.PositionSize.LessThanOrEqual(decimal.Zero) || c.PositionSize.GreaterThan(one) {
		return fmt.Errorf("position_size must be in (0, 1], got %s", c.PositionSize.String())
	}
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("update_interval must be positive, got %s", c.UpdateInterval)
	}
	return nil
}

func pairFromString(pairStr string) (domain.Pair, error) {
	pairElements := strings.Split(pairStr, "_")
	if len(pairElements) != 2 || pairElements[0] == "" || pairElements[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair param: %s", pairStr)
	}
	return domain.Pair{From: pairElements[0], To: pairElements[1]}, nil
}

// Write saves the configuration to a YAML file. Used by the setup wizard.
func (c Config) Write(path string) error {
	tmp := configTmp{
		Platform:       c.Platform,
		Pair:           c.Pair.String(),
		InitialCapital: c.InitialCapital.String(),
		ShortWindow:    c.ShortWindow,
		LongWindow:     c.LongWindow,
		PositionSize:   c.PositionSize.String(),
		UpdateInterval: c.UpdateInterval,
		WebAddr:        c.WebAddr,
		JournalDir:     c.JournalDir,
	}
	data, err := yaml.Marshal(tmp)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
