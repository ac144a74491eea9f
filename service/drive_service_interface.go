package service

import "context"

// ArchiveInterface defines the contract for storing generated order forms outside the service
type ArchiveInterface interface {
	Upload(ctx context.Context, filename, mimeType string, data []byte) (fileID, link string, err error)
}
