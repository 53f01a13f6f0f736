package checkpoint

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/SuperSamus/prime/numeric"
)

// Options configures how a checkpoint is written.
type Options struct {
	Encoding    Encoding
	Compression Compression
}

// WithEncoding selects the payload encoding.
func WithEncoding(e Encoding) func(*Options) {
	return func(o *Options) { o.Encoding = e }
}

// WithCompression selects the payload compression.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) { o.Compression = c }
}

// Save writes a checkpoint of a generation run to w. known is the sorted
// known-primes list, frontier the smallest value the run has not examined;
// together they fully describe the run for later resumption.
func Save[T numeric.Integer](w io.Writer, known []T, frontier T, optFns ...func(*Options)) error {
	opts := Options{Encoding: EncodingRaw, Compression: CompressionNone}
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := encodePayload(known, opts.Encoding)
	if err != nil {
		return err
	}

	checksum := crc32.ChecksumIEEE(payload)
	rawSize := uint64(len(payload))

	stored, used, err := compress(payload, opts.Compression)
	if err != nil {
		return err
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Encoding:    uint8(opts.Encoding),
		Compression: uint8(used),
		Count:       uint64(len(known)),
		Frontier:    uint64(frontier),
		PayloadSize: uint64(len(stored)),
		RawSize:     rawSize,
		Checksum:    checksum,
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	_, err = w.Write(stored)
	return err
}

// Load reads a checkpoint from r, returning the known-primes list and the
// frontier. The payload is fully validated: header sanity, checksum, strict
// ascending order, and fit into the target type.
func Load[T numeric.Integer](r io.Reader) ([]T, T, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	if err := header.validate(); err != nil {
		return nil, 0, err
	}

	stored := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, 0, fmt.Errorf("%w: truncated payload: %v", ErrCorrupt, err)
	}

	payload, err := decompress(stored, Compression(header.Compression), header.RawSize)
	if err != nil {
		return nil, 0, err
	}

	if actual := crc32.ChecksumIEEE(payload); actual != header.Checksum {
		return nil, 0, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	known, err := decodePayload[T](payload, Encoding(header.Encoding), header.Count)
	if err != nil {
		return nil, 0, err
	}

	frontier, err := fit[T](header.Frontier)
	if err != nil {
		return nil, 0, err
	}

	return known, frontier, nil
}

func encodePayload[T numeric.Integer](known []T, e Encoding) ([]byte, error) {
	switch e {
	case EncodingRaw:
		buf := make([]byte, 8*len(known))
		for i, p := range known {
			binary.LittleEndian.PutUint64(buf[8*i:], uint64(p))
		}
		return buf, nil
	case EncodingRoaring:
		bm := roaring64.New()
		for _, p := range known {
			bm.Add(uint64(p))
		}
		return bm.MarshalBinary()
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidEncoding, e)
	}
}

func decodePayload[T numeric.Integer](payload []byte, e Encoding, count uint64) ([]T, error) {
	switch e {
	case EncodingRaw:
		if uint64(len(payload)) != 8*count {
			return nil, fmt.Errorf("%w: payload holds %d values, header says %d", ErrCorrupt, len(payload)/8, count)
		}
		known := make([]T, count)
		var prev uint64
		for i := range known {
			v := binary.LittleEndian.Uint64(payload[8*i:])
			if i > 0 && v <= prev {
				return nil, fmt.Errorf("%w: values not strictly ascending at index %d", ErrCorrupt, i)
			}
			t, err := fit[T](v)
			if err != nil {
				return nil, err
			}
			known[i] = t
			prev = v
		}
		return known, nil
	case EncodingRoaring:
		bm := roaring64.New()
		if err := bm.UnmarshalBinary(payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if bm.GetCardinality() != count {
			return nil, fmt.Errorf("%w: bitmap holds %d values, header says %d", ErrCorrupt, bm.GetCardinality(), count)
		}
		known := make([]T, 0, count)
		it := bm.Iterator()
		for it.HasNext() {
			t, err := fit[T](it.Next())
			if err != nil {
				return nil, err
			}
			known = append(known, t)
		}
		return known, nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidEncoding, e)
	}
}

func fit[T numeric.Integer](v uint64) (T, error) {
	if v > uint64(numeric.MaxValue[T]()) {
		return 0, fmt.Errorf("%w: value %d overflows target type", ErrCorrupt, v)
	}
	return T(v), nil
}
