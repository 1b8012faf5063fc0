package bus

import (
	"context"
	"sync"
)

// Memory fans events out to in-process subscribers. Used when no redis is
// configured and by tests.
type Memory struct {
	mu   sync.RWMutex
	subs map[int]func(Event)
	next int
}

func NewMemory() *Memory {
	return &Memory{subs: map[int]func(Event){}}
}

func (b *Memory) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
	return nil
}

func (b *Memory) Subscribe(ctx context.Context, fn func(Event)) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	<-ctx.Done()

	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

func (b *Memory) Close() error { return nil }
