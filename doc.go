// Package prime implements an incremental prime-generation engine based on
// trial division.
//
// The engine keeps one growing artifact, a sorted slice of every prime found
// so far, and extends it in three ways: one candidate at a time, one wide
// parallel pass, or a resumable sequence of fixed-size chunks. Chunked runs
// can be paced, cancelled between chunks, observed through hooks, and
// persisted as checkpoints for later resumption.
//
// # Quick Start
//
// One-shot generation:
//
//	primes := prime.Below[uint64](1_000_000)
//
// Configured generator:
//
//	gen, _ := prime.New[uint64]().
//		ChunkSize(100_000).
//		Workers(8).
//		PostCycle(func(batch []uint64) { fmt.Println(len(batch)) }).
//		Build()
//	primes, _ := gen.Generate(ctx, 10_000_000, nil)
//
// # Resumable Runs
//
// A run is fully described by its known-primes list and the frontier, the
// smallest value not yet examined. Persist both after each chunk and resume
// with GenerateFrom:
//
//	primes, _ = gen.GenerateFrom(ctx, 100_000_000, primes, frontier)
//
// The checkpoint package serializes this pair, and blobstore implementations
// put it on local disk, MinIO, or S3.
//
// # Streaming
//
// Stream yields each chunk's discoveries as the run advances:
//
//	for batch, err := range gen.Stream(ctx, until, nil) {
//		...
//	}
package prime
