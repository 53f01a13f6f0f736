// Package minio provides a checkpoint Store backed by the MinIO client.
//
// MinIO is a high-performance, S3-compatible object storage system. This
// package works against MinIO itself and other S3-compatible systems like
// Ceph, SeaweedFS, and Garage, without any AWS dependencies.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "primes/")
//	err = checkpoint.Write(ctx, store, "run/latest", known, frontier)
package minio
