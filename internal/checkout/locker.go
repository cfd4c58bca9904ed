package checkout

import (
	"context"
	"slices"
	"sync"
)

// keyedLocker hands out one exclusive lock per key. Locks are channels so that waiting honours ctx.
type keyedLocker struct {
	locks sync.Map // map[string]chan struct{}
}

func (l *keyedLocker) slot(key string) chan struct{} {
	if v, ok := l.locks.Load(key); ok {
		return v.(chan struct{})
	}

	actual, _ := l.locks.LoadOrStore(key, make(chan struct{}, 1))
	return actual.(chan struct{})
}

// acquire locks every key in sorted order, so two callers sharing keys cannot deadlock.
// On failure nothing stays locked.
func (l *keyedLocker) acquire(ctx context.Context, keys []string) (func(), error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, key := range sorted {
		ch := l.slot(key)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		}
	}

	return release, nil
}

func withLocks[T any](ctx context.Context, l *keyedLocker, keys []string, fn func() (T, error)) (T, error) {
	var zero T

	release, err := l.acquire(ctx, keys)
	if err != nil {
		return zero, err
	}
	defer release()

	result, err := fn()
	if err != nil {
		return zero, err
	}

	return result, nil
}
