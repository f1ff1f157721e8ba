package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is an executed simulated fill. Append-only: records are never
// mutated or removed once written.
type Trade struct {
	// ID unique trade identifier.
	ID string `json:"id"`
	// Timestamp time of the sample that triggered the trade.
	Timestamp time.Time `json:"ts"`
	// Pair trading pair the fill belongs to.
	Pair string `json:"pair"`
	// Side buy or sell.
	Side Action `json:"side"`
	// Price fill price (last observed close).
	Price decimal.Decimal `json:"price"`
	// Quantity base asset quantity filled.
	Quantity decimal.Decimal `json:"quantity"`
	// CapitalAfter quote capital after the fill was applied.
	CapitalAfter decimal.Decimal `json:"capital_after"`
	// PositionAfter base asset held after the fill was applied.
	PositionAfter decimal.Decimal `json:"position_after"`
	// LatencyMs wall-clock duration of the fetch that produced the sample.
	LatencyMs int64 `json:"latency_ms"`
	// Volume24h 24h base volume reported with the sample.
	Volume24h decimal.Decimal `json:"volume_24h"`
	// VolatilityPct percent move over the long lookback at fill time.
	VolatilityPct decimal.Decimal `json:"volatility_pct"`
	// Regime market trend classification at fill time.
	Regime Regime `json:"regime"`
}

// String returns a human-readable string representation.
func (t *Trade) String() string {
	return fmt.Sprintf("%s %s %s @ %s", t.Pair, t.Side.String(), t.Quantity.String(), t.Price.String())
}
