// Package blobstore provides storage abstraction for checkpoint blobs.
//
// Store is the interface for reading and writing the checkpoint files a
// resumable generation run produces. Implementations must be safe for
// concurrent use, and Put must be atomic: a reader never observes a
// half-written checkpoint.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with mmap reads and rename-on-close writes
//   - minio.Store: any S3-compatible endpoint via the MinIO client
//   - s3.Store: Amazon S3, with a DynamoDB-backed latest-checkpoint pointer
//
// # Custom Implementations
//
// Implement the Store interface to support other backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Cloud backends should serve Blob.ReadRange as a single ranged request so
// header probes stay cheap.
package blobstore
