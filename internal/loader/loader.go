// Package loader provides request-scoped batching and caching of store
// lookups. A Loader collects single-key loads issued while a graph query
// fans out across sibling fields, collapses them into one store query per
// pending key set, and memoizes results for the lifetime of the loader.
//
// A Loader and its cache belong to exactly one request and must be
// discarded at request end; cached results must not outlive the request's
// consistency snapshot.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/photogram/photogram/internal/metrics"
)

const (
	// DefaultMaxBatch bounds the keys covered by one store dispatch.
	DefaultMaxBatch = 100
	// DefaultWait is the cooperative batching window. Long enough for the
	// executor to issue every sibling load, short enough to be invisible
	// next to a store round trip.
	DefaultWait = 250 * time.Microsecond
)

// BatchFn fetches values for a whole key set in one store query and
// returns them grouped by key. Keys that match nothing may be absent from
// the map.
type BatchFn[K comparable, V any] func(ctx context.Context, keys []K) (map[K][]V, error)

// Config tunes a Loader.
type Config struct {
	MaxBatch int
	Wait     time.Duration
	Recorder metrics.Recorder
}

// Loader batches and caches loads for one access pattern. Safe for
// concurrent use within its owning request.
type Loader[K comparable, V any] struct {
	name     string
	batch    BatchFn[K, V]
	maxBatch int
	wait     time.Duration
	rec      metrics.Recorder

	mu        sync.Mutex
	cache     map[K]*thunk[V]
	pending   []K
	scheduled bool
}

// thunk is the shared pending result for one key. All callers loading the
// same key wait on the same thunk.
type thunk[V any] struct {
	done chan struct{}
	vals []V
	err  error
}

// New creates a Loader named name (the name only labels metrics).
func New[K comparable, V any](name string, batch BatchFn[K, V], cfg Config) *Loader[K, V] {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	if cfg.Wait <= 0 {
		cfg.Wait = DefaultWait
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NewNoop()
	}

	return &Loader[K, V]{
		name:     name,
		batch:    batch,
		maxBatch: cfg.MaxBatch,
		wait:     cfg.Wait,
		rec:      cfg.Recorder,
		cache:    make(map[K]*thunk[V]),
	}
}

// Load returns the values for key, coalescing concurrent loads into
// batched store queries. Repeated loads of the same key within the
// loader's lifetime return the memoized result without a new dispatch.
// When the batch query behind a dispatch fails, every key in that
// dispatch observes the same error.
func (l *Loader[K, V]) Load(ctx context.Context, key K) ([]V, error) {
	l.mu.Lock()
	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		l.rec.IncLoaderCacheHit(l.name)
		return t.wait(ctx)
	}

	t := &thunk[V]{done: make(chan struct{})}
	l.cache[key] = t
	l.pending = append(l.pending, key)
	if !l.scheduled {
		l.scheduled = true
		go l.flushAfter(ctx, l.wait)
	}
	l.mu.Unlock()

	l.rec.IncLoaderCacheMiss(l.name)
	return t.wait(ctx)
}

// flushAfter waits out the batching window, then dispatches the whole
// pending key set in chunks of at most maxBatch keys each, sequentially.
func (l *Loader[K, V]) flushAfter(ctx context.Context, wait time.Duration) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	l.mu.Lock()
	keys := l.pending
	l.pending = nil
	l.scheduled = false
	l.mu.Unlock()

	for start := 0; start < len(keys); start += l.maxBatch {
		end := start + l.maxBatch
		if end > len(keys) {
			end = len(keys)
		}
		l.dispatch(ctx, keys[start:end])
	}
}

// dispatch runs one store query for chunk and settles every thunk in it.
func (l *Loader[K, V]) dispatch(ctx context.Context, chunk []K) {
	l.rec.IncLoaderDispatch(l.name, len(chunk))

	grouped, err := l.batch(ctx, chunk)

	l.mu.Lock()
	thunks := make([]*thunk[V], len(chunk))
	for i, key := range chunk {
		thunks[i] = l.cache[key]
	}
	l.mu.Unlock()

	for i, key := range chunk {
		t := thunks[i]
		if err != nil {
			t.err = err
		} else if vals, ok := grouped[key]; ok {
			t.vals = vals
		} else {
			t.vals = []V{}
		}
		close(t.done)
	}
}

func (t *thunk[V]) wait(ctx context.Context) ([]V, error) {
	select {
	case <-t.done:
		return t.vals, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
