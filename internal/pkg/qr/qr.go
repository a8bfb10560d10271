// Package qr renders QR codes as PNG bytes.
package qr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
)

// EncodePNG encodes text as a QR code scaled to size x size pixels.
func EncodePNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text must not be empty")
	}

	code, err := bqr.Encode(text, bqr.M, bqr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to render PNG: %w", err)
	}
	return buf.Bytes(), nil
}
