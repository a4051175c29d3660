// Package render builds styled QR code images and their data-URI form.
package render

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ModuleSize is the edge length of one QR module in pixels. The encoder keeps
// its standard 4-module quiet zone around the symbol.
const ModuleSize = 10

const (
	MsgEmptyInput = "Vui lòng nhập nội dung QR code"
	MsgSuccess    = "QR Code đã được tạo thành công!"
)

const dataURIPrefix = "data:image/png;base64,"

// Image is a rendered QR code.
type Image struct {
	PNG     []byte
	Style   Style
	Palette Palette
}

// DataURI returns the PNG as a data:image/png;base64 URI.
func (img *Image) DataURI() string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(img.PNG)
}

// Result pairs a rendered image with the user-facing status message.
// Image is nil when the input was rejected.
type Result struct {
	Image   *Image
	Message string
}

// Render encodes text as a QR code drawn with the palette of style.
// Blank text is rejected with a message and no error. Encoder failures are
// returned as errors.
func Render(text string, style Style) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{Message: MsgEmptyInput}, nil
	}

	q, err := qrcode.New(text, qrcode.Highest)
	if err != nil {
		return Result{}, fmt.Errorf("encode qr: %w", err)
	}

	pal := style.Palette()
	q.ForegroundColor = pal.Foreground
	q.BackgroundColor = pal.Background

	png, err := q.PNG(-ModuleSize)
	if err != nil {
		return Result{}, fmt.Errorf("rasterize qr: %w", err)
	}

	return Result{
		Image:   &Image{PNG: png, Style: style, Palette: pal},
		Message: MsgSuccess,
	}, nil
}

// ParseDataURI extracts the PNG bytes from a data URI produced by DataURI.
func ParseDataURI(s string) ([]byte, error) {
	payload, ok := strings.CutPrefix(s, dataURIPrefix)
	if !ok {
		return nil, fmt.Errorf("not a png data uri")
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data uri payload: %w", err)
	}
	return b, nil
}
