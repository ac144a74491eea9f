package service

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveArchive uploads order forms into a Google Drive folder
type DriveArchive struct {
	client   *drive.Service
	folderID string
}

// NewDriveArchive creates a DriveArchive
// credentialsPath should be the path to the Service Account JSON file
func NewDriveArchive(ctx context.Context, credentialsPath, folderID string) (*DriveArchive, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveArchive{client: client, folderID: folderID}, nil
}

var _ ArchiveInterface = (*DriveArchive)(nil)

// Upload creates a new file in the archive folder
func (a *DriveArchive) Upload(ctx context.Context, filename, mimeType string, data []byte) (string, string, error) {
	file := &drive.File{
		Name:     filename,
		MimeType: mimeType,
		Parents:  []string{a.folderID},
	}

	created, err := a.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id, webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	return created.Id, created.WebViewLink, nil
}
