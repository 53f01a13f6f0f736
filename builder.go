package prime

import (
	"golang.org/x/time/rate"

	"github.com/SuperSamus/prime/numeric"
)

// DefaultChunkSize is the chunk size used when none is configured.
// For types too narrow to represent it, the chunk size saturates at the
// type's maximum, which degenerates to a single chunk per run.
const DefaultChunkSize = 1 << 20

// New creates a generator builder for the integral type T.
//
// The builder is immutable: each method returns a new builder with the
// updated configuration, so partially configured builders can be shared
// safely.
//
// Example:
//
//	gen, err := prime.New[uint64]().
//	    ChunkSize(1_000_000).
//	    Workers(8).
//	    PostCycle(func(batch []uint64) { persist(batch) }).
//	    Build()
func New[T numeric.Integer]() Builder[T] {
	return Builder[T]{
		chunkSize: defaultChunkSize[T](),
	}
}

// Builder is an immutable fluent builder for Generator instances.
type Builder[T numeric.Integer] struct {
	chunkSize    T
	workers      int
	verifyPrefix bool
	limiter      *rate.Limiter
	logger       *Logger
	metrics      MetricsCollector
	hooks        hooks[T]
}

// ChunkSize sets the maximum width of a chunk, the half-open candidate range
// processed as one parallel batch. Zero is rejected at Build.
func (b Builder[T]) ChunkSize(n T) Builder[T] {
	b.chunkSize = n
	return b
}

// Workers sets the number of goroutines used inside a single chunk's
// test phase. Values <= 0 mean GOMAXPROCS. Chunks themselves always run
// strictly one after another.
func (b Builder[T]) Workers(n int) Builder[T] {
	b.workers = n
	return b
}

// OnFound sets the per-prime hook. Sequential paths invoke it in ascending
// order; parallel batch paths give no ordering guarantee. The hook must not
// mutate the known-primes slice.
func (b Builder[T]) OnFound(fn func(p T)) Builder[T] {
	b.hooks.found = fn
	return b
}

// PreCycle sets the per-chunk continue/cancel hook. It is called with the
// chunk bounds before the chunk is tested; returning false stops the run,
// retaining every previously committed chunk's result. This is the engine's
// sole cancellation point: a cancellation observed mid-chunk lets the
// in-flight chunk finish first.
func (b Builder[T]) PreCycle(fn func(start, end T) bool) Builder[T] {
	b.hooks.preCycle = fn
	return b
}

// PostCycle sets the per-chunk result hook. It is called once per completed
// chunk with exactly that chunk's newly appended primes.
func (b Builder[T]) PostCycle(fn func(batch []T)) Builder[T] {
	b.hooks.postCycle = fn
	return b
}

// PaceChunks throttles chunk starts with a token-bucket rate limit, for
// callers that want background generation to yield resources. The limiter
// is consulted between chunks only.
func (b Builder[T]) PaceChunks(limit rate.Limit, burst int) Builder[T] {
	b.limiter = rate.NewLimiter(limit, burst)
	return b
}

// VerifyPrefix enables validation of the caller-supplied known-primes list
// at the start of each chunked run. The check is expensive (it re-derives
// primality independently) and intended for debugging resumed state; the
// default matches the engine's documented contract, which trusts the caller.
func (b Builder[T]) VerifyPrefix(v bool) Builder[T] {
	b.verifyPrefix = v
	return b
}

// Logger sets the structured logger. Nil means no logging.
func (b Builder[T]) Logger(l *Logger) Builder[T] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector. Nil disables metrics collection.
func (b Builder[T]) Metrics(m MetricsCollector) Builder[T] {
	b.metrics = m
	return b
}

// Build validates the configuration and creates the Generator.
func (b Builder[T]) Build() (*Generator[T], error) {
	if b.chunkSize == 0 {
		return nil, ErrZeroChunkSize
	}

	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}

	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &Generator[T]{
		chunkSize:    b.chunkSize,
		workers:      b.workers,
		verifyPrefix: b.verifyPrefix,
		limiter:      b.limiter,
		logger:       logger,
		metrics:      metrics,
		hooks:        b.hooks,
	}, nil
}

// defaultChunkSize clamps DefaultChunkSize to the range of T.
func defaultChunkSize[T numeric.Integer]() T {
	if uint64(numeric.MaxValue[T]()) < uint64(DefaultChunkSize) {
		return numeric.MaxValue[T]()
	}
	v := uint64(DefaultChunkSize)
	return T(v)
}
