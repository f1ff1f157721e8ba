package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sample is a single observed market data point. Immutable once created.
type Sample struct {
	// Timestamp observation time with millisecond precision.
	Timestamp time.Time
	// Open opening price of the observed period.
	Open decimal.Decimal
	// High highest price of the observed period.
	High decimal.Decimal
	// Low lowest price of the observed period.
	Low decimal.Decimal
	// Close last traded price.
	Close decimal.Decimal
	// Volume 24h base asset volume.
	Volume decimal.Decimal
}
