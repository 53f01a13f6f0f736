package checkpoint

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies checkpoint files (ASCII: "PRC0")
	MagicNumber = 0x50524330
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000

	headerSize = 64
)

// Encoding selects how the known-primes payload is laid out.
type Encoding uint8

const (
	// EncodingRaw stores one little-endian uint64 per prime.
	EncodingRaw Encoding = 1
	// EncodingRoaring stores the primes as a serialized 64-bit roaring
	// bitmap. Denser for large lists, at the cost of decode work.
	EncodingRoaring Encoding = 2
)

// Compression selects how the payload is compressed.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, moderate ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidEncoding    = errors.New("invalid encoding")
	ErrInvalidCompression = errors.New("invalid compression")
	// ErrCorrupt is returned when the payload is structurally invalid:
	// truncated, misaligned, unsorted, or overflowing the target type.
	ErrCorrupt = errors.New("corrupt checkpoint payload")
)

// FileHeader is the 64-byte header at the start of every checkpoint file.
// All integers are little-endian.
type FileHeader struct {
	Magic       uint32 // 0x50524330 ("PRC0")
	Version     uint32 // File format version
	Encoding    uint8  // 1=Raw, 2=Roaring
	Compression uint8  // 0=None, 1=LZ4, 2=ZSTD
	Padding1    [6]byte
	Count       uint64 // Number of primes in the payload
	Frontier    uint64 // Smallest value the run has not examined
	PayloadSize uint64 // Stored payload bytes (after compression)
	RawSize     uint64 // Payload bytes before compression
	Checksum    uint32 // CRC32 (IEEE) of the uncompressed payload
	Padding2    [4]byte
	Reserved    [8]byte // Future use
}

func (h *FileHeader) validate() error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	switch Encoding(h.Encoding) {
	case EncodingRaw, EncodingRoaring:
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidEncoding, h.Encoding)
	}
	switch Compression(h.Compression) {
	case CompressionNone, CompressionLZ4, CompressionZSTD:
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidCompression, h.Compression)
	}
	if Encoding(h.Encoding) == EncodingRaw && h.RawSize%8 != 0 {
		return fmt.Errorf("%w: raw payload size %d not a multiple of 8", ErrCorrupt, h.RawSize)
	}
	if Compression(h.Compression) == CompressionNone && h.PayloadSize != h.RawSize {
		return fmt.Errorf("%w: uncompressed payload sizes disagree", ErrCorrupt)
	}
	return nil
}

// ChecksumMismatchError is returned when payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}
