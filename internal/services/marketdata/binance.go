package marketdata

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// BinanceSource implements SampleSource for Binance using the public
// 24h ticker statistics endpoint.
type BinanceSource struct {
	client *binance.Client
}

// NewBinanceSource creates a new Binance sample source.
func NewBinanceSource(client *binance.Client) *BinanceSource {
	return &BinanceSource{client: client}
}

// FetchSample fetches the latest 24h ticker statistics and converts them
// into a sample.
func (s *BinanceSource) FetchSample(ctx context.Context, pair domain.Pair) (domain.Sample, error) {
	stats, err := s.client.NewListPriceChangeStatsService().Symbol(pair.Symbol()).Do(ctx)
	if err != nil {
		return domain.Sample{}, errors.Wrapf(err, "failed to fetch ticker stats from Binance for %s", pair.String())
	}
	if len(stats) == 0 {
		return domain.Sample{}, errors.Errorf("binance API returned empty ticker stats for %s", pair.String())
	}

	st := stats[0]
	open, err := decimal.NewFromString(st.OpenPrice)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse open price")
	}
	high, err := decimal.NewFromString(st.HighPrice)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse high price")
	}
	low, err := decimal.NewFromString(st.LowPrice)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse low price")
	}
	last, err := decimal.NewFromString(st.LastPrice)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse last price")
	}
	volume, err := decimal.NewFromString(st.Volume)
	if err != nil {
		return domain.Sample{}, errors.Wrap(err, "failed to parse volume")
	}

	return domain.Sample{
		Timestamp: time.Unix(0, st.CloseTime*int64(time.Millisecond)),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     last,
		Volume:    volume,
	}, nil
}
