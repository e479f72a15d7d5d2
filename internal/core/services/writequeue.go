package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// writeOp is a single mutation of one key.
type writeOp struct {
	key    string
	value  string
	remove bool
}

// WriteQueue serialises key-value mutations per key.
// Operations on the same key are applied strictly in submission order;
// operations on different keys do not wait for each other.
type WriteQueue struct {
	store driven.KeyValueStore

	mu    sync.Mutex
	tails map[string]chan struct{}
	wg    sync.WaitGroup
}

// NewWriteQueue creates a queue in front of store.
func NewWriteQueue(store driven.KeyValueStore) *WriteQueue {
	return &WriteQueue{
		store: store,
		tails: make(map[string]chan struct{}),
	}
}

// Set enqueues a write. The returned channel receives exactly one result.
// The write is detached from ctx cancellation so a caller that does not
// wait for it cannot abort it halfway.
func (q *WriteQueue) Set(ctx context.Context, key, value string) <-chan error {
	return q.submit(context.WithoutCancel(ctx), writeOp{key: key, value: value})
}

// Remove enqueues a removal. Unlike Set, the removal honours ctx since
// its caller always waits for the outcome.
func (q *WriteQueue) Remove(ctx context.Context, key string) <-chan error {
	return q.submit(ctx, writeOp{key: key, remove: true})
}

func (q *WriteQueue) submit(ctx context.Context, op writeOp) <-chan error {
	result := make(chan error, 1)
	done := make(chan struct{})

	q.mu.Lock()
	prev := q.tails[op.key]
	q.tails[op.key] = done
	q.wg.Add(1)
	q.mu.Unlock()

	go func() {
		defer q.wg.Done()
		if prev != nil {
			<-prev
		}
		result <- q.apply(ctx, op)
		close(done)

		q.mu.Lock()
		if q.tails[op.key] == done {
			delete(q.tails, op.key)
		}
		q.mu.Unlock()
	}()

	return result
}

func (q *WriteQueue) apply(ctx context.Context, op writeOp) error {
	if q.store == nil {
		return domain.ErrNotImplemented
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if op.remove {
		return q.store.Remove(ctx, op.key)
	}
	return q.store.Set(ctx, op.key, op.value)
}

// Wait blocks until every operation submitted for key so far has completed.
func (q *WriteQueue) Wait(ctx context.Context, key string) error {
	q.mu.Lock()
	tail := q.tails[key]
	q.mu.Unlock()

	if tail == nil {
		return nil
	}

	select {
	case <-tail:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports whether key has queued or running operations.
func (q *WriteQueue) Pending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.tails[key]
	return ok
}

// Close waits for all outstanding operations.
func (q *WriteQueue) Close() {
	q.wg.Wait()
}
