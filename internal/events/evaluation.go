// Package events fans out evaluation results to interested consumers such
// as the web dashboard.
package events

import (
	"sync"

	"github.com/vadiminshakov/crossbot/internal/domain"
)

// EvaluationBroadcaster fans out evaluations to all subscribers via
// buffered channels. It keeps the API intentionally small so call sites
// can stay straightforward.
type EvaluationBroadcaster struct {
	mu     sync.RWMutex
	subs   map[chan domain.Evaluation]struct{}
	buffer int
}

// NewEvaluationBroadcaster creates a broadcaster with the given
// per-subscriber buffer.
func NewEvaluationBroadcaster(buffer int) *EvaluationBroadcaster {
	if buffer < 1 {
		buffer = 64
	}
	return &EvaluationBroadcaster{
		subs:   make(map[chan domain.Evaluation]struct{}),
		buffer: buffer,
	}
}

// Publish sends the evaluation to all subscribers, dropping if a reader is slow.
func (b *EvaluationBroadcaster) Publish(e domain.Evaluation) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// drop slow consumer
		}
	}
}

// Subscribe returns a channel that receives evaluations until Unsubscribe
// is called.
func (b *EvaluationBroadcaster) Subscribe() chan domain.Evaluation {
	ch := make(chan domain.Evaluation, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it.
func (b *EvaluationBroadcaster) Unsubscribe(ch chan domain.Evaluation) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}
