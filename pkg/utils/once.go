package utils

import (
	"context"
	"sync"
)

// InitOnce runs an initialization function until it succeeds once.
// Unlike sync.Once a failed attempt is not remembered, so the next caller retries.
// Concurrent callers are serialized; after success Do is a cheap no-op.
type InitOnce struct {
	mu   sync.Mutex
	done bool
}

// Do runs fn unless a previous call already succeeded.
func (o *InitOnce) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return nil
	}
	if err := fn(ctx); err != nil {
		return err
	}
	o.done = true
	return nil
}

// Done reports whether initialization has succeeded.
func (o *InitOnce) Done() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done
}
