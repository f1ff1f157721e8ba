package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/gowal"
)

const (
	tradeKeyPrefix      = "trade_"
	walSegmentThreshold = 1000
	walMaxSegments      = 100
	walDirPermissions   = 0o755
)

// Journal is an append-only on-disk audit log of executed trades, backed
// by a WAL. It is write-only during operation: ledger state is never
// restored from it at startup.
type Journal struct {
	mu  sync.Mutex
	wal *gowal.Wal
}

// NewJournal opens (or creates) the trade journal in dir.
func NewJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, walDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "failed to ensure journal directory %s", dir)
	}

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "trade_",
		SegmentThreshold: walSegmentThreshold,
		MaxSegments:      walMaxSegments,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init trade journal WAL")
	}

	return &Journal{wal: wal}, nil
}

// Record appends one trade to the journal.
func (j *Journal) Record(trade domain.Trade) error {
	if j == nil || j.wal == nil {
		return errors.New("trade journal is not initialized")
	}

	payload, err := json.Marshal(trade)
	if err != nil {
		return errors.Wrap(err, "marshal trade")
	}

	key := fmt.Sprintf("%s%s", tradeKeyPrefix, trade.ID)

	j.mu.Lock()
	defer j.mu.Unlock()

	return j.wal.Write(j.wal.CurrentIndex()+1, key, payload)
}

// Trades returns all journaled trades in write order.
func (j *Journal) Trades() ([]domain.Trade, error) {
	if j == nil || j.wal == nil {
		return nil, errors.New("trade journal is not initialized")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	var trades []domain.Trade
	for msg := range j.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, tradeKeyPrefix) {
			continue
		}
		var trade domain.Trade
		if err := json.Unmarshal(msg.Value, &trade); err != nil {
			return nil, errors.Wrapf(err, "decode journaled trade %s", msg.Key)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// Close closes the underlying WAL.
func (j *Journal) Close() error {
	if j == nil || j.wal == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return j.wal.Close()
}
