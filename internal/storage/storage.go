// Package storage uploads storefront assets and returns their public URLs.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrStorageNotProvisioned means the destination bucket or folder does
	// not exist and must be created by an operator.
	ErrStorageNotProvisioned = errors.New("asset storage is not provisioned: create the destination folder and share it with the service account")
	// ErrUploadFailed is any other upload failure.
	ErrUploadFailed = errors.New("asset upload failed")
)

// Uploader stores a file and returns the URL it is publicly served from.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Unprovisioned is the Uploader used when no storage is configured.
type Unprovisioned struct{}

// Upload always fails with ErrStorageNotProvisioned.
func (Unprovisioned) Upload(context.Context, string, []byte) (string, error) {
	return "", ErrStorageNotProvisioned
}
