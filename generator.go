package prime

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/SuperSamus/prime/numeric"
	"github.com/SuperSamus/prime/trial"
)

// hooks are the caller-supplied side effects of a generation run. They are
// owned by the caller, never by the engine.
type hooks[T numeric.Integer] struct {
	found     func(p T)
	preCycle  func(start, end T) bool
	postCycle func(batch []T)
}

// Generator extends known-primes lists by trial division. It is created via
// New and is safe to reuse across calls; a single call exclusively owns the
// slice it is advancing.
//
// Every generating method shares one precondition: the supplied known slice
// is sorted strictly ascending and contains every prime up to the square
// root of the first candidate it will test. The engine establishes the
// invariant itself when it seeds from scratch; resumed state is trusted
// unless VerifyPrefix was enabled.
type Generator[T numeric.Integer] struct {
	chunkSize    T
	workers      int
	verifyPrefix bool
	limiter      *rate.Limiter
	logger       *Logger
	metrics      MetricsCollector
	hooks        hooks[T]
}

// Below returns every prime below until in ascending order, using a
// default-configured sequential generator.
func Below[T numeric.Integer](until T) []T {
	g, err := New[T]().Build()
	if err != nil {
		// The default configuration cannot fail validation.
		panic(err)
	}
	return g.Extend(until, nil)
}

// Extend grows known with every prime below until, testing odd candidates
// one at a time with the sequential oracle. Primes are appended, and the
// found hook invoked, in ascending order. The input slice may be
// reallocated; use the returned slice.
func (g *Generator[T]) Extend(until T, known []T) []T {
	return g.ExtendFrom(until, known, 0)
}

// ExtendFrom is Extend starting the scan at startFrom; candidates below
// max(startFrom, last known + 2) are skipped.
func (g *Generator[T]) ExtendFrom(until T, known []T, startFrom T) []T {
	began := time.Now()
	base := len(known)

	known = g.extendSequential(until, known, startFrom)

	g.metrics.RecordExtend(len(known)-base, time.Since(began))
	return known
}

// ExtendParallel grows known with every prime below until using a single
// wide parallel filter. The prefix is first completed sequentially up to the
// square root of until, because it cannot be appended to while workers read
// it. Results are appended in ascending order; the found hook carries no
// ordering guarantee across the parallel batch.
func (g *Generator[T]) ExtendParallel(until T, known []T) []T {
	return g.ExtendParallelFrom(until, known, 0)
}

// ExtendParallelFrom is ExtendParallel starting the wide filter at
// startFrom. The sequential seeding phase ignores startFrom: the prefix must
// be gapless up to the square root of until regardless of where the filter
// begins.
func (g *Generator[T]) ExtendParallelFrom(until T, known []T, startFrom T) []T {
	began := time.Now()
	base := len(known)

	known = g.extendParallel(until, known, startFrom)

	g.metrics.RecordExtend(len(known)-base, time.Since(began))
	return known
}

// Generate runs the chunked incremental generator over [0, until),
// returning the extended known-primes list. See GenerateFrom.
func (g *Generator[T]) Generate(ctx context.Context, until T, known []T) ([]T, error) {
	return g.GenerateFrom(ctx, until, known, 0)
}

// GenerateFrom drives a resumable, cancellable sequence of bounded parallel
// batches over [startFrom, until). Chunks are processed strictly in
// ascending order and each chunk's discoveries are merged before the next
// chunk starts, so the returned slice is globally sorted.
//
// The PreCycle hook is consulted before every chunk; returning false ends
// the run normally with every previously committed chunk retained. The
// context is checked at the same boundary: a cancellation observed mid-chunk
// lets the in-flight chunk finish first. The PostCycle hook receives exactly
// the primes each chunk appended.
//
// To resume a persisted run, pass the saved list together with
// startFrom = frontier. Correctness of resumption depends on the caller
// preserving the prefix invariant documented on Generator.
func (g *Generator[T]) GenerateFrom(ctx context.Context, until T, known []T, startFrom T) ([]T, error) {
	if g.chunkSize == 0 {
		return known, ErrZeroChunkSize
	}
	if g.verifyPrefix {
		if verr := trial.VerifyKnown(known); verr != nil {
			return known, &ErrInvalidPrefix{cause: verr}
		}
	}

	known = reserve(known, until)

	start := startFrom
	first := true
	for start < until {
		end := numeric.AddSat(start, g.chunkSize)
		if end > until {
			end = until
		}

		if err := ctx.Err(); err != nil {
			g.logger.LogRun(ctx, uint64(until), len(known), err)
			return known, err
		}
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				g.logger.LogRun(ctx, uint64(until), len(known), err)
				return known, err
			}
		}
		if !g.callPreCycle(start, end) {
			g.logger.LogCanceled(ctx, uint64(start), uint64(end))
			return known, nil
		}

		began := time.Now()
		base := len(known)

		if first {
			// The first chunk seeds the prefix up to sqrt(end) before any
			// parallel testing of the chunk interior.
			known = g.seedBasic(known, until)
			known = g.extendParallel(end, known, start)
			first = false
		} else {
			lo := nextOdd(known, start)
			if lo < end {
				// The prefix already covers the square root of every
				// candidate in the chunk, so one bound serves the batch.
				divisors := known[:trial.Bound(end-1, known)]
				batch := g.parFilter(lo, end, func(n T) bool {
					return trial.IsPrimeBounded(n, divisors)
				})
				for _, p := range batch {
					g.callFound(p)
				}
				known = append(known, batch...)
			}
		}

		newPrimes := known[base:]
		g.metrics.RecordChunk(len(newPrimes), time.Since(began))
		g.callPostCycle(newPrimes)
		g.logger.LogChunk(ctx, uint64(start), uint64(end), len(newPrimes))

		start = end
	}

	g.logger.LogRun(ctx, uint64(until), len(known), nil)
	return known, nil
}

// extendSequential is the core of the sequential range generator.
func (g *Generator[T]) extendSequential(until T, known []T, startFrom T) []T {
	known = g.seedBasic(known, until)
	known = reserve(known, until)

	// Candidates stay odd: nextOdd aligns the start and the stride is 2,
	// and the type's maximum is odd, so n cannot wrap below.
	for n := nextOdd(known, startFrom); n < until; n += 2 {
		if trial.IsPrime(n, known) {
			known = append(known, n)
			g.callFound(n)
		}
	}

	return known
}

// extendParallel is the core of the two-phase parallel range generator.
func (g *Generator[T]) extendParallel(until T, known []T, startFrom T) []T {
	known = g.seedBasic(known, until)
	known = reserve(known, until)

	// Phase 1: the prefix is read-only while the wide filter runs, so it
	// must already contain every prime up to sqrt(until), inclusive.
	root := numeric.Sqrt(until)
	known = g.extendSequential(numeric.AddSat(root, 1), known, 0)

	// Phase 2: one wide parallel filter over the remaining odd candidates.
	lo := nextOdd(known, startFrom)
	if lo >= until {
		return known
	}

	batch := g.parFilter(lo, until, func(n T) bool {
		return trial.IsPrime(n, known)
	})
	for _, p := range batch {
		g.callFound(p)
	}

	return append(known, batch...)
}

// blocksPerWorker oversubscribes the range partition so that blocks with an
// uneven share of slow candidates do not leave workers idle.
const blocksPerWorker = 4

// parFilter collects the primes among the odd candidates in [lo, hi).
// Workers own contiguous sub-ranges and their results are concatenated in
// range order, so the returned batch is sorted ascending.
func (g *Generator[T]) parFilter(lo, hi T, test func(n T) bool) []T {
	if lo >= hi {
		return nil
	}

	workers := g.workerCount()
	span := uint64(hi - lo)

	blocks := workers * blocksPerWorker
	if uint64(blocks) > span {
		blocks = int(span)
	}
	if blocks <= 1 || workers == 1 {
		return filterOdds(lo, hi, test)
	}

	results := make([][]T, blocks)

	var eg errgroup.Group
	eg.SetLimit(workers)

	width, rem := span/uint64(blocks), span%uint64(blocks)
	blockLo := lo
	for i := range blocks {
		w := width
		if uint64(i) < rem {
			w++
		}
		blockHi := blockLo + T(w)

		from := blockLo
		eg.Go(func() error {
			results[i] = filterOdds(from, blockHi, test)
			return nil
		})

		blockLo = blockHi
	}
	// Workers never return an error; Wait only joins them.
	_ = eg.Wait()

	var out []T
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// filterOdds tests every odd candidate in [lo, hi) and returns the
// survivors in ascending order.
func filterOdds[T numeric.Integer](lo, hi T, test func(n T) bool) []T {
	var out []T

	n := lo
	if n%2 == 0 {
		n++
	}
	for ; n < hi; n += 2 {
		if test(n) {
			out = append(out, n)
		}
	}

	return out
}

// seedBasic ensures known begins with the primes 2 and 3 (when below until).
// They bootstrap the odd-candidate scan, which can only discover primes the
// prefix already proves. Seeding is idempotent; the found hook fires only
// for primes actually added.
func (g *Generator[T]) seedBasic(known []T, until T) []T {
	if len(known) >= 2 {
		return known
	}
	if len(known) == 0 && until > 2 {
		known = append(known, 2)
		g.callFound(2)
	}
	if len(known) == 1 && known[0] == 2 && until > 3 {
		known = append(known, 3)
		g.callFound(3)
	}
	return known
}

// nextOdd returns the first candidate to test: past both startFrom and
// every prime already known, aligned to an odd number.
func nextOdd[T numeric.Integer](known []T, startFrom T) T {
	n := T(3)
	if len(known) > 0 {
		n = numeric.AddSat(known[len(known)-1], 2)
	}
	if startFrom > n {
		n = startFrom
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// reserve grows known's capacity to the estimated prime count below until.
// The estimate is non-binding; ordinary append growth absorbs any shortfall.
func reserve[T numeric.Integer](known []T, until T) []T {
	want := numeric.EstimatePrimeCount(until)
	if cap(known) >= want {
		return known
	}
	out := make([]T, len(known), want)
	copy(out, known)
	return out
}

func (g *Generator[T]) workerCount() int {
	if g.workers > 0 {
		return g.workers
	}
	return runtime.GOMAXPROCS(0)
}

func (g *Generator[T]) callFound(p T) {
	if g.hooks.found != nil {
		g.hooks.found(p)
	}
}

func (g *Generator[T]) callPreCycle(start, end T) bool {
	if g.hooks.preCycle == nil {
		return true
	}
	return g.hooks.preCycle(start, end)
}

func (g *Generator[T]) callPostCycle(batch []T) {
	if g.hooks.postCycle != nil {
		g.hooks.postCycle(batch)
	}
}
