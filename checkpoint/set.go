package checkpoint

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/SuperSamus/prime/numeric"
)

// Set is a compact membership index over a known-primes list, backed by a
// 64-bit roaring bitmap. It answers "was n found prime?" without a binary
// search over the slice, and is the in-memory counterpart of
// EncodingRoaring checkpoints.
type Set struct {
	bm *roaring64.Bitmap
}

// NewSet builds a Set from a known-primes list.
func NewSet[T numeric.Integer](known []T) *Set {
	bm := roaring64.New()
	for _, p := range known {
		bm.Add(uint64(p))
	}
	return &Set{bm: bm}
}

// Contains reports whether n is in the set.
func (s *Set) Contains(n uint64) bool {
	return s.bm.Contains(n)
}

// Cardinality returns the number of primes in the set.
func (s *Set) Cardinality() uint64 {
	return s.bm.GetCardinality()
}

// Max returns the largest prime in the set. It panics on an empty set,
// matching the underlying bitmap.
func (s *Set) Max() uint64 {
	return s.bm.Maximum()
}

// CountBelow returns how many primes in the set are smaller than n.
func (s *Set) CountBelow(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return s.bm.Rank(n - 1)
}
