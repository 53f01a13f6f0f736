// Package numeric defines the capability contract shared by every integral
// type the engine can generate primes over, together with the small set of
// arithmetic helpers the generators rely on: integer square root, saturating
// addition and the prime-counting estimate used for capacity planning.
package numeric

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Integer is the set of types the prime engine operates on.
//
// The engine needs total order, additive identities, saturating addition,
// an integer square root and a round trip through float64 for estimation.
// All unsigned integer kinds satisfy that contract; signedness would only
// add a sign check to every candidate test.
type Integer interface {
	constraints.Unsigned
}

// MaxValue returns the largest representable value of T.
func MaxValue[T Integer]() T {
	var zero T
	return ^zero
}

// AddSat returns a+b, saturating at MaxValue instead of wrapping.
//
// Chunk ends near the top of the type's range must clamp rather than wrap,
// otherwise the chunk loop would either truncate the range or never
// terminate.
func AddSat[T Integer](a, b T) T {
	s := a + b
	if s < a {
		return MaxValue[T]()
	}
	return s
}

// Sqrt returns the integer square root of n, the largest x with x*x <= n.
//
// A float64 square root seeds the result and an integer fix-up corrects the
// rounding error, which is at most a couple of steps in either direction.
// The comparisons divide instead of squaring so that the fix-up cannot
// overflow near MaxValue.
func Sqrt[T Integer](n T) T {
	if n < 2 {
		return n
	}

	x := T(math.Sqrt(float64(n)))
	for x > 0 && x > n/x {
		x--
	}
	for x+1 <= n/(x+1) {
		x++
	}

	return x
}

// legendre is the correction term in Legendre's refinement of the prime
// number theorem: pi(n) is approximately n / (ln n - 1.08366).
const legendre = 1.08366

// EstimatePrimeCount approximates the number of primes below n.
//
// The estimate is a capacity hint only. It may undercount or overcount;
// callers use it to pre-size storage and ordinary slice growth absorbs any
// shortfall, so no correctness property depends on it.
func EstimatePrimeCount[T Integer](n T) int {
	if n < 2 {
		return 0
	}

	x := float64(n)
	d := math.Log(x) - legendre
	if d <= 0 {
		return int(n)
	}

	est := math.Ceil(x / d)
	if est > x {
		est = x
	}

	return int(est)
}
