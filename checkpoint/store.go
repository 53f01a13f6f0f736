package checkpoint

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/SuperSamus/prime/blobstore"
	"github.com/SuperSamus/prime/numeric"
)

// Write serializes a checkpoint and stores it atomically under name.
func Write[T numeric.Integer](ctx context.Context, store blobstore.Store, name string, known []T, frontier T, optFns ...func(*Options)) error {
	var buf bytes.Buffer
	if err := Save(&buf, known, frontier, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// Read loads and validates a checkpoint blob.
func Read[T numeric.Integer](ctx context.Context, store blobstore.Store, name string) ([]T, T, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, 0, err
	}
	return Load[T](bytes.NewReader(data))
}

// Peek reads and validates only a checkpoint's header, without fetching the
// payload. Cloud stores serve this as a single small ranged request, so it
// is the cheap way to inspect a run's frontier and prime count.
func Peek(ctx context.Context, store blobstore.Store, name string) (FileHeader, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return FileHeader{}, err
	}
	defer b.Close()

	rc, err := b.ReadRange(ctx, 0, headerSize)
	if err != nil {
		return FileHeader{}, err
	}
	defer rc.Close()

	var header FileHeader
	if err := binary.Read(rc, binary.LittleEndian, &header); err != nil {
		return FileHeader{}, err
	}
	if err := header.validate(); err != nil {
		return FileHeader{}, err
	}
	return header, nil
}
