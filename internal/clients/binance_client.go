package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates a Binance API client. Market data endpoints used
// by the bot are public, so empty credentials are accepted.
func NewBinanceClient(apiKey, apiSecret string) *binance.Client {
	return binance.NewClient(apiKey, apiSecret)
}
