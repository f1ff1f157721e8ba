package marketdata

import (
	"context"

	"github.com/vadiminshakov/crossbot/internal/domain"
)

// SampleSource yields one market sample per call. Implementations wrap a
// single exchange API; transport failures are returned as errors and the
// caller decides how to recover (the trading loop skips the tick).
type SampleSource interface {
	// FetchSample fetches the latest market sample for a trading pair.
	FetchSample(ctx context.Context, pair domain.Pair) (domain.Sample, error)
}
