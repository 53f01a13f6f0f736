package prime

import (
	"context"
	"iter"
)

// Stream runs the chunked generator and yields each chunk's newly found
// primes as one sorted batch. Iteration stops when the range is exhausted,
// when the context is cancelled, or when the consumer breaks out of the
// loop; in every case the generator commits only whole chunks.
//
// A non-nil error, when present, is yielded once as the final element with
// a nil batch.
func (g *Generator[T]) Stream(ctx context.Context, until T, known []T) iter.Seq2[[]T, error] {
	return g.StreamFrom(ctx, until, known, 0)
}

// StreamFrom is Stream starting at startFrom. The caller's PreCycle and
// PostCycle hooks still run; the stream observes chunks after them.
func (g *Generator[T]) StreamFrom(ctx context.Context, until T, known []T, startFrom T) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		// Rebind the hooks on a copy so the consumer can stop the run
		// through the regular chunk boundary.
		sg := *g
		stopped := false

		prev := g.hooks
		sg.hooks.preCycle = func(start, end T) bool {
			if stopped {
				return false
			}
			if prev.preCycle != nil {
				return prev.preCycle(start, end)
			}
			return true
		}
		sg.hooks.postCycle = func(batch []T) {
			if prev.postCycle != nil {
				prev.postCycle(batch)
			}
			if !yield(batch, nil) {
				stopped = true
			}
		}

		if _, err := sg.GenerateFrom(ctx, until, known, startFrom); err != nil && !stopped {
			yield(nil, err)
		}
	}
}
