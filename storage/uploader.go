// Package storage хранит логотипы команд во внешнем объектном хранилище.
package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader - хранилище объектов по ключу. Сервисы хранят в БД только ключ,
// публичный URL вычисляется при отдаче.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	// GetPublicURL возвращает "" если URL построить нельзя.
	GetPublicURL(key string) string
}
