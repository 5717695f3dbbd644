package storage

import "context"

// Service uploads database snapshots to remote object storage.
type Service interface {
	UploadFile(ctx context.Context, bucket, key, localPath string) error
}
