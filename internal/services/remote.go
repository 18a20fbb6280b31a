package services

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrIntegrationDisabled is returned by operations whose external service is
// not configured.
var ErrIntegrationDisabled = errors.New("integration is not configured")

// RemoteFile is a document stored in the remote document store.
type RemoteFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

// RemoteStore is a folder-structured document store (Google Drive, S3).
// Folder paths use "/" separators and are created on demand.
type RemoteStore interface {
	Name() string
	EnsureFolder(ctx context.Context, folderPath string) (string, error)
	Upload(ctx context.Context, folderPath, name, mimeType string, content []byte) (*RemoteFile, error)
	ShareLink(ctx context.Context, file RemoteFile) (string, error)
}

// splitFolderPath normalises a folder path into its non-empty segments.
func splitFolderPath(folderPath string) []string {
	var segments []string
	for _, seg := range strings.Split(path.Clean("/"+folderPath), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}
