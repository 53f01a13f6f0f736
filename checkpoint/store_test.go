package checkpoint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperSamus/prime/blobstore"
)

func TestWriteReadStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, Write(ctx, store, "run/latest", testPrimes, 50,
		WithCompression(CompressionZSTD)))

	known, frontier, err := Read[uint64](ctx, store, "run/latest")
	require.NoError(t, err)
	assert.Equal(t, testPrimes, known)
	assert.Equal(t, uint64(50), frontier)
}

func TestReadMissing(t *testing.T) {
	_, _, err := Read[uint64](context.Background(), blobstore.NewMemoryStore(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestPeek(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, Write(ctx, store, "run/latest", testPrimes, 50))

	header, err := Peek(ctx, store, "run/latest")
	require.NoError(t, err)
	assert.Equal(t, uint64(len(testPrimes)), header.Count)
	assert.Equal(t, uint64(50), header.Frontier)
	assert.Equal(t, uint8(EncodingRaw), header.Encoding)
}

func TestPeekRejectsForeignBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "junk", make([]byte, 128)))

	_, err := Peek(ctx, store, "junk")
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestSet(t *testing.T) {
	set := NewSet(testPrimes)

	assert.True(t, set.Contains(13))
	assert.False(t, set.Contains(15))
	assert.Equal(t, uint64(len(testPrimes)), set.Cardinality())
	assert.Equal(t, uint64(47), set.Max())

	assert.Equal(t, uint64(0), set.CountBelow(2))
	assert.Equal(t, uint64(4), set.CountBelow(10))
	assert.Equal(t, uint64(15), set.CountBelow(100))
}
