// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the CSV catalog
// store needs when its files live in a bucket. AWS S3 and self-hosted MinIO both work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: wrapped by EnsureBucket at startup.
//   - PutObject: uploads a whole file.
//   - GetObject: retrieves content as a stream.
//   - RemoveObject: deletes a file.
//
// IsNotFound recognises the "NoSuchKey" response so callers can treat a missing
// object as an empty file.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
