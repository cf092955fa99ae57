// Package imaging validates uploaded pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage = errors.New("upload a valid image. The file you uploaded was either not an image or a corrupted image")
	ErrTooLarge = errors.New("image is too large")
	ErrEmpty    = errors.New("the submitted file is empty")
)

// MaxPixels caps width*height of an accepted image. The header is checked
// before decoding so a forged size never reaches the pixel allocation.
const MaxPixels = 89478485

var formats = map[string]struct {
	contentType string
	ext         string
}{
	"jpeg": {"image/jpeg", ".jpg"},
	"png":  {"image/png", ".png"},
	"gif":  {"image/gif", ".gif"},
	"bmp":  {"image/bmp", ".bmp"},
	"tiff": {"image/tiff", ".tiff"},
	"webp": {"image/webp", ".webp"},
}

// ValidateImage reads at most limit bytes from r and checks that they decode
// as a supported image. It returns the bytes and the detected format name.
func ValidateImage(r io.Reader, limit int64) ([]byte, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmpty
	}
	if int64(len(data)) > limit {
		return nil, "", ErrTooLarge
	}

	// sniff the first 512 bytes to reject obvious non-images before decoding
	sniffed := http.DetectContentType(data)
	if sniffed == "text/plain; charset=utf-8" || sniffed == "text/html; charset=utf-8" {
		return nil, "", ErrNotImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrNotImage
	}
	if _, ok := formats[format]; !ok {
		return nil, "", ErrNotImage
	}
	if uint64(cfg.Width)*uint64(cfg.Height) > MaxPixels {
		return nil, "", ErrTooLarge
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return nil, "", ErrNotImage
	}
	return data, format, nil
}

// ContentType maps a format name returned by ValidateImage to its MIME type.
func ContentType(format string) string {
	if f, ok := formats[format]; ok {
		return f.contentType
	}
	return "application/octet-stream"
}

// Extension maps a format name returned by ValidateImage to a file extension.
func Extension(format string) string {
	return formats[format].ext
}
