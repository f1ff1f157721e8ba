package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetYaml_FullConfig(t *testing.T) {
	path := writeYaml(t, `
platform: binance
pair: ETH_USDT
initial_capital: "5000"
short_window: 3
long_window: 10
position_size: "0.25"
update_interval: 2s
web_addr: ":8080"
journal_dir: /tmp/journal
`)

	conf, err := getYaml(path)
	require.NoError(t, err)
	assert.Equal(t, "binance", conf.Platform)
	assert.Equal(t, domain.Pair{From: "ETH", To: "USDT"}, conf.Pair)
	assert.True(t, conf.InitialCapital.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 3, conf.ShortWindow)
	assert.Equal(t, 10, conf.LongWindow)
	assert.True(t, conf.PositionSize.Equal(decimal.RequireFromString("0.25")))
	assert.Equal(t, 2*time.Second, conf.UpdateInterval)
	assert.Equal(t, ":8080", conf.WebAddr)
	assert.Equal(t, "/tmp/journal", conf.JournalDir)
}

func TestGetYaml_AppliesDefaults(t *testing.T) {
	path := writeYaml(t, `
platform: simulate
pair: BTC_USDT
`)

	conf, err := getYaml(path)
	require.NoError(t, err)
	assert.True(t, conf.InitialCapital.Equal(decimal.RequireFromString(DefaultInitialCapital)))
	assert.Equal(t, DefaultShortWindow, conf.ShortWindow)
	assert.Equal(t, DefaultLongWindow, conf.LongWindow)
	assert.True(t, conf.PositionSize.Equal(decimal.RequireFromString(DefaultPositionSize)))
	assert.Equal(t, DefaultUpdateInterval, conf.UpdateInterval)
}

func TestGetYaml_InvalidPair(t *testing.T) {
	path := writeYaml(t, `
platform: simulate
pair: BTCUSDT
`)

	_, err := getYaml(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Platform:       "simulate",
		Pair:           domain.Pair{From: "BTC", To: "USDT"},
		InitialCapital: decimal.NewFromInt(10000),
		ShortWindow:    5,
		LongWindow:     20,
		PositionSize:   decimal.RequireFromString("0.1"),
		UpdateInterval: 5 * time.Second,
	}
	require.NoError(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unsupported platform", func(c *Config) { c.Platform = "kraken" }},
		{"zero short window", func(c *Config) { c.ShortWindow = 0 }},
		{"long window not above short", func(c *Config) { c.LongWindow = 5 }},
		{"non-positive capital", func(c *Config) { c.InitialCapital = decimal.Zero }},
		{"position size above one", func(c *Config) { c.PositionSize = decimal.NewFromInt(2) }},
		{"zero position size", func(c *Config) { c.PositionSize = decimal.Zero }},
		{"zero update interval", func(c *Config) { c.UpdateInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.validate())
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.gen.yaml")
	conf := Config{
		Platform:       "bybit",
		Pair:           domain.Pair{From: "SOL", To: "USDT"},
		InitialCapital: decimal.NewFromInt(2500),
		ShortWindow:    7,
		LongWindow:     30,
		PositionSize:   decimal.RequireFromString("0.5"),
		UpdateInterval: 10 * time.Second,
		WebAddr:        ":9090",
		JournalDir:     "./wal/trades",
	}
	require.NoError(t, conf.Write(path))

	got, err := getYaml(path)
	require.NoError(t, err)
	assert.Equal(t, conf.Platform, got.Platform)
	assert.Equal(t, conf.Pair, got.Pair)
	assert.True(t, got.InitialCapital.Equal(conf.InitialCapital))
	assert.Equal(t, conf.ShortWindow, got.ShortWindow)
	assert.Equal(t, conf.LongWindow, got.LongWindow)
	assert.Equal(t, conf.UpdateInterval, got.UpdateInterval)
}
