package workspace

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	folderMIMEType      = "application/vnd.google-apps.folder"
	defaultListPageSize = 100

	fileListFields = "nextPageToken, files(id, name, mimeType, modifiedTime, size)"
)

// DriveService exposes the file-storage operations used by command handlers.
type DriveService struct {
	svc *drive.Service
}

func NewDriveService(svc *drive.Service) *DriveService {
	return &DriveService{svc: svc}
}

// ListFiles lists files matching query. A pageSize of zero or less defaults
// to 100; pageToken continues a previous listing.
func (d *DriveService) ListFiles(ctx context.Context, query string, pageSize int64, pageToken string) (*drive.FileList, error) {
	if pageSize <= 0 {
		pageSize = defaultListPageSize
	}
	call := d.svc.Files.List().PageSize(pageSize).Fields(fileListFields)
	if query != "" {
		call = call.Q(query)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return resp, nil
}

// CreateFolder creates a folder, optionally inside parentID.
func (d *DriveService) CreateFolder(ctx context.Context, name, parentID string) (*drive.File, error) {
	if name == "" {
		return nil, ErrMissingFileName
	}
	folder := &drive.File{Name: name, MimeType: folderMIMEType}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}
	resp, err := d.svc.Files.Create(folder).Fields("id, name").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating folder %s: %w", name, err)
	}
	return resp, nil
}

// Upload uploads content as a new file with the given name and MIME type.
func (d *DriveService) Upload(ctx context.Context, name, mimeType string, content io.Reader) (*drive.File, error) {
	if name == "" {
		return nil, ErrMissingFileName
	}
	resp, err := d.svc.Files.Create(&drive.File{Name: name}).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id, name, webViewLink").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", name, err)
	}
	return resp, nil
}
