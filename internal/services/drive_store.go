package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	driveFolderMime   = "application/vnd.google-apps.folder"
	driveDocumentMime = "application/vnd.google-apps.document"
)

type driveStore struct {
	srv             *drive.Service
	rootID          string
	convertMarkdown bool

	mu      sync.Mutex
	folders map[string]string
}

// NewDriveStore authenticates with a service account file, or application
// default credentials when credentialsFile is empty.
func NewDriveStore(ctx context.Context, credentialsFile, rootID string, convertMarkdown bool) (RemoteStore, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	if rootID == "" {
		rootID = "root"
	}

	return &driveStore{
		srv:             srv,
		rootID:          rootID,
		convertMarkdown: convertMarkdown,
		folders:         make(map[string]string),
	}, nil
}

func (d *driveStore) Name() string {
	return "drive"
}

// EnsureFolder walks folderPath from the root folder, reusing existing
// folders and creating missing ones. Resolved ids are cached.
func (d *driveStore) EnsureFolder(ctx context.Context, folderPath string) (string, error) {
	parent := d.rootID
	walked := ""

	for _, seg := range splitFolderPath(folderPath) {
		walked += "/" + seg

		d.mu.Lock()
		id, ok := d.folders[walked]
		d.mu.Unlock()
		if ok {
			parent = id
			continue
		}

		id, err := d.findOrCreateFolder(ctx, seg, parent)
		if err != nil {
			return "", err
		}

		d.mu.Lock()
		d.folders[walked] = id
		d.mu.Unlock()
		parent = id
	}
	return parent, nil
}

func (d *driveStore) findOrCreateFolder(ctx context.Context, name, parent string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and '%s' in parents and trashed = false",
		escapeDriveQuery(name), driveFolderMime, parent)

	list, err := d.srv.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search folder %q: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder, err := d.srv.Files.Create(&drive.File{
		Name:     name,
		MimeType: driveFolderMime,
		Parents:  []string{parent},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return folder.Id, nil
}

// Upload stores content in folderPath. Markdown is imported as a Google Doc
// when conversion is enabled.
func (d *driveStore) Upload(ctx context.Context, folderPath, name, mimeType string, content []byte) (*RemoteFile, error) {
	folderID, err := d.EnsureFolder(ctx, folderPath)
	if err != nil {
		return nil, err
	}

	meta := &drive.File{Name: name, Parents: []string{folderID}}
	if d.convertMarkdown && mimeType == "text/markdown" {
		meta.MimeType = driveDocumentMime
		meta.Name = strings.TrimSuffix(name, ".md")
	}

	created, err := d.srv.Files.Create(meta).
		Media(bytes.NewReader(content), googleapi.ContentType(mimeType)).
		Fields("id, name, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return &RemoteFile{
		ID:   created.Id,
		Name: created.Name,
		Path: strings.Join(append(splitFolderPath(folderPath), created.Name), "/"),
		URL:  created.WebViewLink,
	}, nil
}

// ShareLink grants "anyone with the link" read access and returns the link.
func (d *driveStore) ShareLink(ctx context.Context, file RemoteFile) (string, error) {
	_, err := d.srv.Permissions.Create(file.ID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to share %s: %w", file.Name, err)
	}

	if file.URL != "" {
		return file.URL, nil
	}

	f, err := d.srv.Files.Get(file.ID).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get link for %s: %w", file.Name, err)
	}
	return f.WebViewLink, nil
}

func escapeDriveQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
