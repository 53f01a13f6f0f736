// Package checkpoint serializes the resumable state of a generation run.
//
// A run is fully described by its known-primes list and its frontier (the
// smallest value not yet examined). Checkpoint files carry both behind a
// fixed 64-byte header with a magic number, format version, and a CRC32 of
// the payload, so a resumed run never trusts a torn or corrupted file.
//
// # File Layout
//
//	[FileHeader: 64 bytes][payload: PayloadSize bytes]
//
// The payload is the known-primes list, either as raw little-endian uint64
// values or as a serialized roaring bitmap, optionally compressed with LZ4
// or ZSTD. The checksum always covers the uncompressed payload.
//
// # Usage
//
//	var buf bytes.Buffer
//	err := checkpoint.Save(&buf, known, frontier,
//	    checkpoint.WithCompression(checkpoint.CompressionZSTD))
//
//	known, frontier, err := checkpoint.Load[uint64](&buf)
//
// Write and Read pair Save/Load with a blobstore.Store; Peek inspects a
// stored checkpoint's header without fetching the payload.
package checkpoint
