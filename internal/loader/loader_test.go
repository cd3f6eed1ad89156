package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingBatch records every dispatch it receives and serves values from
// a fixed table.
type countingBatch struct {
	mu        sync.Mutex
	dispatches [][]string
	table     map[string][]string
	err       error
}

func (b *countingBatch) fn(_ context.Context, keys []string) (map[string][]string, error) {
	b.mu.Lock()
	copied := make([]string, len(keys))
	copy(copied, keys)
	b.dispatches = append(b.dispatches, copied)
	b.mu.Unlock()

	if b.err != nil {
		return nil, b.err
	}

	result := make(map[string][]string, len(keys))
	for _, k := range keys {
		if vals, ok := b.table[k]; ok {
			result[k] = vals
		}
	}
	return result, nil
}

func (b *countingBatch) dispatchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dispatches)
}

func TestLoader_SplitsLargeKeySetIntoChunks(t *testing.T) {
	ctx := context.Background()

	table := make(map[string][]string, 250)
	keys := make([]string, 250)
	for i := range keys {
		keys[i] = fmt.Sprintf("user-%03d", i)
		table[keys[i]] = []string{"photo-of-" + keys[i]}
	}

	batch := &countingBatch{table: table}
	l := New("photos", batch.fn, Config{MaxBatch: 100, Wait: 200 * time.Millisecond})

	var wg sync.WaitGroup
	results := make([][]string, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			results[i], errs[i] = l.Load(ctx, key)
		}(i, key)
	}
	wg.Wait()

	require.Equal(t, 3, batch.dispatchCount(), "ceil(250/100) dispatches expected")
	for _, d := range batch.dispatches {
		assert.LessOrEqual(t, len(d), 100)
	}

	for i, key := range keys {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"photo-of-" + key}, results[i], "batched value must equal direct lookup for %s", key)
	}
}

func TestLoader_MemoizesPerKey(t *testing.T) {
	ctx := context.Background()

	batch := &countingBatch{table: map[string][]string{"u1": {"a", "b"}}}
	l := New("photos", batch.fn, Config{Wait: time.Millisecond})

	first, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	// Same key again: served from cache, no new dispatch.
	second, err := l.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, batch.dispatchCount())
}

func TestLoader_ConcurrentSameKeySharesOneDispatch(t *testing.T) {
	ctx := context.Background()

	batch := &countingBatch{table: map[string][]string{"u1": {"a"}}}
	l := New("photos", batch.fn, Config{Wait: 50 * time.Millisecond})

	var wg sync.WaitGroup
	var failures atomic.Int64
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vals, err := l.Load(ctx, "u1")
			if err != nil || len(vals) != 1 || vals[0] != "a" {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.Equal(t, 1, batch.dispatchCount())
}

func TestLoader_MissingKeyResolvesEmpty(t *testing.T) {
	ctx := context.Background()

	batch := &countingBatch{table: map[string][]string{}}
	l := New("photos", batch.fn, Config{Wait: time.Millisecond})

	vals, err := l.Load(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, vals)
	assert.Empty(t, vals)
}

func TestLoader_BroadcastsDispatchError(t *testing.T) {
	ctx := context.Background()

	storeErr := errors.New("store unavailable")
	batch := &countingBatch{err: storeErr}
	l := New("photos", batch.fn, Config{Wait: 50 * time.Millisecond})

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Load(ctx, fmt.Sprintf("u%d", i))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, batch.dispatchCount())
	for i := range errs {
		assert.ErrorIs(t, errs[i], storeErr, "every key in a failed dispatch observes the same error")
	}
}

func TestLoader_CanceledContextUnblocksCaller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	block := make(chan struct{})
	l := New("photos", func(ctx context.Context, keys []string) (map[string][]string, error) {
		<-block
		return nil, nil
	}, Config{Wait: time.Millisecond})

	done := make(chan error, 1)
	go func() {
		_, err := l.Load(ctx, "u1")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Load did not observe cancellation")
	}
	close(block)
}
