package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

func TestSanitizeFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	tests := []struct {
		in   string
		want string
	}{
		{"Tábua de Churrasco.JPG", "tabua_de_churrasco_1700000000000.jpg"},
		{"copo  térmico (1).png", "copo_termico_1_1700000000000.png"},
		{"placa.final.v2.jpeg", "placa.final.v2_1700000000000.jpeg"},
		{"ÇÃO__ação.webp", "cao_acao_1700000000000.webp"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := SanitizeFileName("sem_extensao", now)
	assert.Error(t, err)
}

func encodeTestImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 160, G: 82, B: 45, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func TestOptimizeImage(t *testing.T) {
	large := encodeTestImage(t, 3200, 1600, imaging.PNG)
	out, err := OptimizeImage(large)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxDimension, img.Bounds().Dx())
	assert.Equal(t, maxDimension/2, img.Bounds().Dy())

	small := encodeTestImage(t, 64, 64, imaging.PNG)
	out, err = OptimizeImage(small)
	require.NoError(t, err)
	assert.Equal(t, small, out)

	text := []byte("not an image")
	out, err = OptimizeImage(text)
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

type fakeDrive struct {
	created   *drive.File
	body      []byte
	createErr error
	shareErr  error
	shared    string
}

func (f *fakeDrive) Create(ctx context.Context, file *drive.File, media io.Reader) (*drive.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = file
	f.body, _ = io.ReadAll(media)
	return &drive.File{Id: "drive-123", Name: file.Name}, nil
}

func (f *fakeDrive) Share(ctx context.Context, fileID string) error {
	f.shared = fileID
	return f.shareErr
}

func TestDriveUploader_Upload(t *testing.T) {
	files := &fakeDrive{}
	u := newDriveUploader(files, "folder-1", zap.NewNop())
	u.now = func() time.Time { return time.UnixMilli(42) }

	url, err := u.Upload(context.Background(), "Logo Ateliê.png", encodeTestImage(t, 10, 10, imaging.PNG))
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/uc?id=drive-123", url)
	assert.Equal(t, "logo_atelie_42.png", files.created.Name)
	assert.Equal(t, []string{"folder-1"}, files.created.Parents)
	assert.Equal(t, "image/png", files.created.MimeType)
	assert.Equal(t, "drive-123", files.shared)
	assert.NotEmpty(t, files.body)
}

func TestDriveUploader_Errors(t *testing.T) {
	data := []byte("plain")

	u := newDriveUploader(&fakeDrive{createErr: &googleapi.Error{Code: 404, Message: "File not found: folder-1"}}, "folder-1", zap.NewNop())
	_, err := u.Upload(context.Background(), "a.txt", data)
	assert.ErrorIs(t, err, ErrStorageNotProvisioned)

	u = newDriveUploader(&fakeDrive{createErr: errors.New("connection refused")}, "folder-1", zap.NewNop())
	_, err = u.Upload(context.Background(), "a.txt", data)
	assert.ErrorIs(t, err, ErrUploadFailed)

	u = newDriveUploader(&fakeDrive{shareErr: &googleapi.Error{Code: 403}}, "folder-1", zap.NewNop())
	_, err = u.Upload(context.Background(), "a.txt", data)
	assert.ErrorIs(t, err, ErrUploadFailed)

	_, err = u.Upload(context.Background(), "noext", data)
	assert.ErrorIs(t, err, ErrUploadFailed)

	_, err = Unprovisioned{}.Upload(context.Background(), "a.png", data)
	assert.ErrorIs(t, err, ErrStorageNotProvisioned)
}
