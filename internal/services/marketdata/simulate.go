package marketdata

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// SimulateSource generates a random-walk price series so the bot can run
// without exchange credentials.
type SimulateSource struct {
	mu   sync.Mutex
	last decimal.Decimal
	rng  *rand.Rand
}

// NewSimulateSource creates a simulated source starting from the given price.
func NewSimulateSource(startPrice decimal.Decimal, seed int64) *SimulateSource {
	if startPrice.LessThanOrEqual(decimal.Zero) {
		startPrice = decimal.NewFromInt(50000)
	}
	return &SimulateSource{
		last: startPrice,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// FetchSample produces the next step of the random walk. Steps are bounded
// to ±0.5% of the previous price.
func (s *SimulateSource) FetchSample(ctx context.Context, pair domain.Pair) (domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return domain.Sample{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	step := decimal.NewFromFloat((s.rng.Float64() - 0.5) / 100)
	open := s.last
	next := open.Add(open.Mul(step))
	if next.LessThanOrEqual(decimal.Zero) {
		next = open
	}
	s.last = next

	high, low := open, next
	if next.GreaterThan(open) {
		high, low = next, open
	}

	return domain.Sample{
		Timestamp: time.Now(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     next,
		Volume:    decimal.NewFromFloat(s.rng.Float64() * 1000),
	}, nil
}
