package ocr

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders for the formats scanners and phones produce.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSize returns the pixel dimensions of an encoded image without decoding
// its pixels. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func ImageSize(data []byte) (width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%s image has no area (%dx%d)", format, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
