// Package marketdata provides price sample sources and the bounded
// sample history the trading loop evaluates against.
package marketdata

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

// SampleBuffer is a bounded, time-ordered history of price samples.
// At capacity the oldest sample is evicted first.
//
// The buffer is not internally synchronized: it is owned by the trading
// loop and mutated only under its lock.
type SampleBuffer struct {
	samples  []domain.Sample
	capacity int
}

// NewSampleBuffer creates a buffer holding at most capacity samples.
func NewSampleBuffer(capacity int) *SampleBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleBuffer{
		samples:  make([]domain.Sample, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a sample to the tail, evicting the head when the buffer
// is full. It always succeeds.
func (b *SampleBuffer) Append(s domain.Sample) {
	if len(b.samples) == b.capacity {
		copy(b.samples, b.samples[1:])
		b.samples = b.samples[:len(b.samples)-1]
	}
	b.samples = append(b.samples, s)
}

// Len returns the current number of samples.
func (b *SampleBuffer) Len() int {
	return len(b.samples)
}

// Capacity returns the maximum number of samples retained.
func (b *SampleBuffer) Capacity() int {
	return b.capacity
}

// Snapshot returns an ordered copy of the buffered samples. The copy is
// independent of later appends, so callers never observe a torn view.
func (b *SampleBuffer) Snapshot() []domain.Sample {
	out := make([]domain.Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// Closes extracts closing prices from a sample snapshot.
func Closes(samples []domain.Sample) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(samples))
	for i, s := range samples {
		closes[i] = s.Close
	}
	return closes
}
