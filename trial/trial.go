// Package trial implements primality testing by trial division against a
// known-primes prefix.
//
// Every function in this package shares one precondition: the known-primes
// slice is sorted strictly ascending and contains every prime up to the
// integer square root of the candidate under test. The precondition is not
// checked on the hot path because a violation cannot be detected locally;
// use VerifyKnown as an opt-in debugging aid instead.
package trial

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/SuperSamus/prime/numeric"
)

var (
	// ErrUnsorted is returned by VerifyKnown when the prefix is not
	// strictly ascending.
	ErrUnsorted = errors.New("known primes are not strictly ascending")

	// ErrIncomplete is returned by VerifyKnown when the prefix has a gap,
	// i.e. a prime below its last element is missing.
	ErrIncomplete = errors.New("known primes have a gap")
)

// Bound returns the index one past the largest prime in known that is less
// than or equal to the integer square root of n. An exact match at the root
// is included, since that value may itself be the smallest factor.
//
// Callers that test many candidates sharing a common upper bound compute the
// index once for the largest candidate and reuse known[:Bound(...)] for the
// whole batch.
func Bound[T numeric.Integer](n T, known []T) int {
	root := numeric.Sqrt(n)

	i, ok := slices.BinarySearch(known, root)
	if ok {
		return i + 1
	}
	return i
}

// IsPrime reports whether n is prime, testing divisibility against the
// primes in known up to the integer square root of n. It short-circuits on
// the first divisor found.
func IsPrime[T numeric.Integer](n T, known []T) bool {
	if n < 2 {
		return false
	}
	return IsPrimeBounded(n, known[:Bound(n, known)])
}

// IsPrimeBounded reports whether n is prime given divisors, a prefix the
// caller has already cut at the square-root bound. It exists so that a batch
// of candidates sharing one bound skips the per-candidate root computation.
func IsPrimeBounded[T numeric.Integer](n T, divisors []T) bool {
	if n < 2 {
		return false
	}
	for _, p := range divisors {
		if n%p == 0 {
			return false
		}
	}
	return true
}

// minParallelDivisors is the prefix length below which fanning out is pure
// overhead and the sequential path is used instead.
const minParallelDivisors = 1 << 10

// pollInterval is how many divisors a worker tests between checks of the
// shared early-exit flag.
const pollInterval = 256

// IsPrimePar reports whether n is prime, fanning the divisor prefix across
// workers goroutines. Workers complete in nondeterministic order but the
// boolean result is deterministic; a worker that finds a divisor makes the
// remaining workers stop early. workers <= 0 means GOMAXPROCS.
func IsPrimePar[T numeric.Integer](n T, known []T, workers int) bool {
	if n < 2 {
		return false
	}
	return IsPrimeBoundedPar(n, known[:Bound(n, known)], workers)
}

// IsPrimeBoundedPar is the parallel variant of IsPrimeBounded.
func IsPrimeBoundedPar[T numeric.Integer](n T, divisors []T, workers int) bool {
	if n < 2 {
		return false
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(divisors) < minParallelDivisors {
		return IsPrimeBounded(n, divisors)
	}
	if workers > len(divisors) {
		workers = len(divisors)
	}

	var (
		wg        sync.WaitGroup
		composite atomic.Bool
	)

	part := (len(divisors) + workers - 1) / workers
	for off := 0; off < len(divisors); off += part {
		block := divisors[off:min(off+part, len(divisors))]

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, p := range block {
				if i%pollInterval == 0 && composite.Load() {
					return
				}
				if n%p == 0 {
					composite.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()

	return !composite.Load()
}

// VerifyKnown checks that known is strictly ascending and gapless: every
// prime up to its last element is present. It is an independent check that
// does not trust the slice under test, so it is far slower than the oracle
// itself and meant for debugging resumed state, not production paths.
func VerifyKnown[T numeric.Integer](known []T) error {
	for i := 1; i < len(known); i++ {
		if known[i] <= known[i-1] {
			return fmt.Errorf("%w: index %d (%d after %d)", ErrUnsorted, i, known[i], known[i-1])
		}
	}

	if len(known) == 0 {
		return nil
	}

	last := known[len(known)-1]
	i := 0
	for m := T(2); m <= last; m++ {
		if !slowIsPrime(m) {
			continue
		}
		if i >= len(known) || known[i] != m {
			return fmt.Errorf("%w: missing %d", ErrIncomplete, m)
		}
		i++
	}
	if i != len(known) {
		return fmt.Errorf("%w: %d is not prime", ErrIncomplete, known[i])
	}

	return nil
}

// slowIsPrime is a self-contained reference check used by VerifyKnown; it
// must not depend on the prefix being validated.
func slowIsPrime[T numeric.Integer](n T) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := T(3); d <= n/d; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
