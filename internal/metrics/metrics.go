// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// GraphQL request metrics
	IncGraphQLRequest()
	ObserveGraphQLDuration(duration time.Duration)

	// Batch loader metrics
	IncLoaderDispatch(loader string, batchSize int)
	IncLoaderCacheHit(loader string)
	IncLoaderCacheMiss(loader string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
