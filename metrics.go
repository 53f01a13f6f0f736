package prime

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordChunk is called after each completed chunk of the incremental
	// generator. found is the number of primes appended by the chunk.
	RecordChunk(found int, duration time.Duration)

	// RecordExtend is called after each direct Extend or ExtendParallel
	// call. found is the number of primes appended.
	RecordExtend(found int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChunk(int, time.Duration)  {}
func (NoopMetricsCollector) RecordExtend(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ChunkCount       atomic.Int64
	ChunkPrimes      atomic.Int64
	ChunkTotalNanos  atomic.Int64
	ExtendCount      atomic.Int64
	ExtendPrimes     atomic.Int64
	ExtendTotalNanos atomic.Int64
}

// NewBasicMetricsCollector creates a new BasicMetricsCollector.
func NewBasicMetricsCollector() *BasicMetricsCollector {
	return &BasicMetricsCollector{}
}

// RecordChunk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunk(found int, duration time.Duration) {
	b.ChunkCount.Add(1)
	b.ChunkPrimes.Add(int64(found))
	b.ChunkTotalNanos.Add(duration.Nanoseconds())
}

// RecordExtend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtend(found int, duration time.Duration) {
	b.ExtendCount.Add(1)
	b.ExtendPrimes.Add(int64(found))
	b.ExtendTotalNanos.Add(duration.Nanoseconds())
}

// AverageChunkDuration returns the mean duration of completed chunks.
func (b *BasicMetricsCollector) AverageChunkDuration() time.Duration {
	count := b.ChunkCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.ChunkTotalNanos.Load() / count)
}
