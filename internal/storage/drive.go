package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// driveFiles is the part of the Drive API the uploader uses.
type driveFiles interface {
	Create(ctx context.Context, file *drive.File, media io.Reader) (*drive.File, error)
	Share(ctx context.Context, fileID string) error
}

type driveAPI struct {
	svc *drive.Service
}

func (d driveAPI) Create(ctx context.Context, file *drive.File, media io.Reader) (*drive.File, error) {
	return d.svc.Files.Create(file).Media(media).Fields("id").SupportsAllDrives(true).Context(ctx).Do()
}

func (d driveAPI) Share(ctx context.Context, fileID string) error {
	_, err := d.svc.Permissions.Create(fileID, &drive.Permission{Type: "anyone", Role: "reader"}).
		SupportsAllDrives(true).Context(ctx).Do()
	return err
}

// DriveUploader stores assets in a Google Drive folder.
type DriveUploader struct {
	files    driveFiles
	folderID string
	logger   *zap.Logger
	now      func() time.Time
}

// NewDriveUploader creates a DriveUploader authenticated with the service
// account credentials file at credentialsPath.
func NewDriveUploader(ctx context.Context, credentialsPath, folderID string, logger *zap.Logger) (*DriveUploader, error) {
	svc, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return newDriveUploader(driveAPI{svc: svc}, folderID, logger), nil
}

func newDriveUploader(files driveFiles, folderID string, logger *zap.Logger) *DriveUploader {
	return &DriveUploader{files: files, folderID: folderID, logger: logger, now: time.Now}
}

// Upload optimizes data, stores it under a sanitized unique name and returns
// its public URL.
func (u *DriveUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	name, err := SanitizeFileName(filename, u.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	optimized, err := OptimizeImage(data)
	if err != nil {
		u.logger.Warn("Image optimization failed, uploading original", zap.String("file", filename), zap.Error(err))
		optimized = data
	}

	file := &drive.File{Name: name, MimeType: http.DetectContentType(optimized)}
	if u.folderID != "" {
		file.Parents = []string{u.folderID}
	}
	created, err := u.files.Create(ctx, file, bytes.NewReader(optimized))
	if err != nil {
		return "", u.classify(name, err)
	}
	if err := u.files.Share(ctx, created.Id); err != nil {
		return "", u.classify(name, err)
	}

	u.logger.Info("Asset uploaded", zap.String("file", name), zap.String("drive_id", created.Id), zap.Int("bytes", len(optimized)))
	return PublicURL(created.Id), nil
}

func (u *DriveUploader) classify(name string, err error) error {
	u.logger.Error("Error uploading asset", zap.String("file", name), zap.Error(err))
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return ErrStorageNotProvisioned
	}
	return fmt.Errorf("%w: %v", ErrUploadFailed, err)
}

// PublicURL is the address a shared Drive file is served from.
func PublicURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?id=%s", fileID)
}
