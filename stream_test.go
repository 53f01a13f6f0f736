package prime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperSamus/prime"
)

func TestStreamYieldsAllChunks(t *testing.T) {
	ctx := context.Background()
	gen := mustBuild(t, prime.New[uint64]().ChunkSize(100))

	var joined []uint64
	batches := 0
	for batch, err := range gen.Stream(ctx, 1_000, nil) {
		require.NoError(t, err)
		joined = append(joined, batch...)
		batches++
	}

	assert.Equal(t, 10, batches)
	assert.Equal(t, refPrimes(1_000), joined)
}

func TestStreamEarlyBreak(t *testing.T) {
	ctx := context.Background()
	gen := mustBuild(t, prime.New[uint64]().ChunkSize(100))

	var joined []uint64
	batches := 0
	for batch, err := range gen.Stream(ctx, 10_000, nil) {
		require.NoError(t, err)
		joined = append(joined, batch...)
		batches++
		if batches == 3 {
			break
		}
	}

	// Breaking stops the run at the next chunk boundary; the batches seen
	// so far cover exactly the committed chunks.
	assert.Equal(t, 3, batches)
	assert.Equal(t, refPrimes(300), joined)
}

func TestStreamContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := mustBuild(t, prime.New[uint64]().ChunkSize(100))

	var errs []error
	for batch, err := range gen.Stream(ctx, 1_000, nil) {
		assert.Nil(t, batch)
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestStreamFromResumes(t *testing.T) {
	ctx := context.Background()
	gen := mustBuild(t, prime.New[uint64]().ChunkSize(250))

	known, err := gen.Generate(ctx, 500, nil)
	require.NoError(t, err)

	var joined []uint64
	for batch, err := range gen.StreamFrom(ctx, 1_000, known, 500) {
		require.NoError(t, err)
		joined = append(joined, batch...)
	}

	assert.Equal(t, refPrimes(1_000), append(known, joined...))
}

func TestStreamKeepsCallerHooks(t *testing.T) {
	ctx := context.Background()

	var hookBatches, streamBatches int
	gen := mustBuild(t, prime.New[uint64]().
		ChunkSize(100).
		PostCycle(func([]uint64) { hookBatches++ }))

	for _, err := range gen.Stream(ctx, 1_000, nil) {
		require.NoError(t, err)
		streamBatches++
	}

	assert.Equal(t, streamBatches, hookBatches)
}

func TestStreamPreCycleStillCancels(t *testing.T) {
	ctx := context.Background()
	gen := mustBuild(t, prime.New[uint64]().
		ChunkSize(100).
		PreCycle(func(start, end uint64) bool { return start < 300 }))

	var joined []uint64
	for batch, err := range gen.Stream(ctx, 1_000, nil) {
		require.NoError(t, err)
		joined = append(joined, batch...)
	}

	assert.Equal(t, refPrimes(300), joined)
}
