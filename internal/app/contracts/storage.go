package contracts

import (
	"context"
	"io"
	"time"
)

type Storage interface {
	UploadFile(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string) (string, error)
	RemoveFile(ctx context.Context, bucketName, objectName string) error
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
