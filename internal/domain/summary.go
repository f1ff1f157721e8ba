package domain

import "github.com/shopspring/decimal"

// PortfolioSummary is a consistent snapshot of the portfolio state plus
// the full ordered trade log. Produced under the trading loop's lock, so
// it is never a torn view.
type PortfolioSummary struct {
	Capital        decimal.Decimal
	Position       decimal.Decimal
	LastPrice      decimal.Decimal
	PortfolioValue decimal.Decimal
	Trades         []Trade
}
