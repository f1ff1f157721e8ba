package marketdata

import (
	"context"
	"time"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// BybitSource implements SampleSource for Bybit using V5 market tickers.
type BybitSource struct {
	client *bybit.Client
}

// NewBybitSource creates a new Bybit sample source.
func NewBybitSource(client *bybit.Client) *BybitSource {
	return &BybitSource{client: client}
}

// FetchSample fetches the latest spot ticker and converts it into a sample.
// The 24h previous price stands in for the open.
func (s *BybitSource) FetchSample(ctx context.Context, pair domain.Pair) (domain.Sample, error) {
	symbol := bybit.SymbolV5(pair.Symbol())

	result, err := s.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   &symbol,
	})
	if err != nil {
		return domain.Sample{}, errors.Wrapf(err, "failed to fetch tickers from Bybit for %s", pair.String())
	}
	if len(result.Result.Spot.List) == 0 {
		return domain.Sample{}, errors.Errorf("bybit API returned empty tickers for %s", pair.String())
	}

	t := result.Result.Spot.List[0]
	open, err := decimal.NewFromString(t.PrevPrice24H)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse 24h previous price")
	}
	high, err := decimal.NewFromString(t.HighPrice24H)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse 24h high price")
	}
	low, err := decimal.NewFromString(t.LowPrice24H)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse 24h low price")
	}
	last, err := decimal.NewFromString(t.LastPrice)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse last price")
	}
	volume, err := decimal.NewFromString(t.Volume24H)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse 24h volume")
	}

	return domain.Sample{
		Timestamp: time.Now(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     last,
		Volume:    volume,
	}, nil
}
