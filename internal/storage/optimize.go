package storage

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	maxDimension = 1600
	jpegQuality  = 80
)

// OptimizeImage downsizes JPEG and PNG images larger than maxDimension and
// re-encodes them in their own format. Other content is returned as is.
func OptimizeImage(data []byte) ([]byte, error) {
	var format imaging.Format
	switch http.DetectContentType(data) {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	resize := b.Dx() > maxDimension || b.Dy() > maxDimension
	if !resize && format == imaging.PNG {
		return data, nil
	}
	if resize {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	// A re-encoded JPEG of the same size is only kept when it is smaller.
	if !resize && buf.Len() >= len(data) {
		return data, nil
	}
	return buf.Bytes(), nil
}
