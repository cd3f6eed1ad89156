package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncGraphQLRequest is a no-op.
func (n *NoopRecorder) IncGraphQLRequest() {}

// ObserveGraphQLDuration is a no-op.
func (n *NoopRecorder) ObserveGraphQLDuration(duration time.Duration) {}

// IncLoaderDispatch is a no-op.
func (n *NoopRecorder) IncLoaderDispatch(loader string, batchSize int) {}

// IncLoaderCacheHit is a no-op.
func (n *NoopRecorder) IncLoaderCacheHit(loader string) {}

// IncLoaderCacheMiss is a no-op.
func (n *NoopRecorder) IncLoaderCacheMiss(loader string) {}
