package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	GraphQLRequests         uint64
	GraphQLDurationCount    uint64
	GraphQLDurationTotalNs  int64
	LoaderDispatches        map[string]uint64
	LoaderKeysDispatched    map[string]uint64
	LoaderCacheHits         map[string]uint64
	LoaderCacheMisses       map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu                     sync.Mutex
	graphqlRequests        uint64
	graphqlDurationCount   uint64
	graphqlDurationTotalNs int64
	loaderDispatches       map[string]uint64
	loaderKeysDispatched   map[string]uint64
	loaderCacheHits        map[string]uint64
	loaderCacheMisses      map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		loaderDispatches:     make(map[string]uint64),
		loaderKeysDispatched: make(map[string]uint64),
		loaderCacheHits:      make(map[string]uint64),
		loaderCacheMisses:    make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		GraphQLRequests:        m.graphqlRequests,
		GraphQLDurationCount:   m.graphqlDurationCount,
		GraphQLDurationTotalNs: m.graphqlDurationTotalNs,
		LoaderDispatches:       copyCounters(m.loaderDispatches),
		LoaderKeysDispatched:   copyCounters(m.loaderKeysDispatched),
		LoaderCacheHits:        copyCounters(m.loaderCacheHits),
		LoaderCacheMisses:      copyCounters(m.loaderCacheMisses),
	}
}

// IncGraphQLRequest increments the request counter.
func (m *InMemoryRecorder) IncGraphQLRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphqlRequests++
}

// ObserveGraphQLDuration records request duration.
func (m *InMemoryRecorder) ObserveGraphQLDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphqlDurationCount++
	m.graphqlDurationTotalNs += duration.Nanoseconds()
}

// IncLoaderDispatch increments the dispatch counter for a loader.
func (m *InMemoryRecorder) IncLoaderDispatch(loader string, batchSize int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaderDispatches[loader]++
	m.loaderKeysDispatched[loader] += uint64(batchSize)
}

// IncLoaderCacheHit increments the cache hit counter for a loader.
func (m *InMemoryRecorder) IncLoaderCacheHit(loader string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaderCacheHits[loader]++
}

// IncLoaderCacheMiss increments the cache miss counter for a loader.
func (m *InMemoryRecorder) IncLoaderCacheMiss(loader string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaderCacheMisses[loader]++
}

func copyCounters(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
