// Package s3 provides an Amazon S3 implementation of blobstore.Store,
// plus a DynamoDB-backed commit store for atomic latest-checkpoint pointers.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("primes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
// # Features
//
//   - Range reads for cheap header probes
//   - Multipart uploads for large checkpoint payloads
//   - Automatic pagination for listing
//   - Configurable prefix for multi-run isolation
//   - CommitStore: conditional-write commit log for concurrent writers
package s3
