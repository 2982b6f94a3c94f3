// Package icon turns image files and executable shell icons into data URLs
// that a web view can embed directly.
package icon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// MIME types returned by MIMEType.
const (
	MIMEPNG     = "image/png"
	MIMEDefault = "application/octet-stream"
)

// ErrUnsupported is returned by FromExecutable on platforms without a shell
// icon API.
var ErrUnsupported = errors.New("icon extraction is only supported on Windows")

var mimeTypes = map[string]string{
	"bmp":  "image/bmp",
	"gif":  "image/gif",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  MIMEPNG,
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
}

// MIMEType guesses an image MIME type from the file extension.
func MIMEType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return MIMEDefault
}

// DataURL wraps data as a base64 data: URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FromFile reads an image file and returns it as a data URL.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read icon file: %w", err)
	}
	return DataURL(MIMEType(path), data), nil
}

// SwapRedBlue converts packed BGRA pixels to RGBA in place.
func SwapRedBlue(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

// EncodePNG encodes top-down, non-premultiplied RGBA pixels as PNG.
func EncodePNG(width, height int, pix []byte) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer has %d bytes, want %d", len(pix), width*height*4)
	}

	img := &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	var buf bytes.Buffer
	buf.Grow(width * height * 2)
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FromBGRA converts a top-down 32-bit BGRA bitmap into a PNG data URL.
// pix is modified in place.
func FromBGRA(width, height int, pix []byte) (string, error) {
	SwapRedBlue(pix)
	encoded, err := EncodePNG(width, height, pix)
	if err != nil {
		return "", err
	}
	return DataURL(MIMEPNG, encoded), nil
}
