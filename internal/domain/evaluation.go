package domain

import "time"

// Evaluation is the structured outcome of one evaluation cycle, consumed by
// the reporting layers (log, web UI). Uses string fields for monetary values
// to avoid float precision issues when consumed by web/UI layers.
type Evaluation struct {
	Timestamp      time.Time `json:"ts"`
	Pair           string    `json:"pair"`
	Action         Action    `json:"action"`
	Price          string    `json:"price"`
	Capital        string    `json:"capital"`
	Position       string    `json:"position"`
	PortfolioValue string    `json:"portfolio_value"`
	LatencyMs      int64     `json:"latency_ms"`
	Volume24h      string    `json:"volume_24h"`
	VolatilityPct  string    `json:"volatility_pct"`
	Regime         string    `json:"regime"`
}
