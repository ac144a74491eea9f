package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 80
	// Size settings (max dimension)
	maxSizeThumb  = 400
	maxSizeMedium = 1200
)

// OptimizePreview converts a page screenshot to JPEG and scales it down
// size: "thumb" or "medium" (anything else is treated as medium)
// Images already smaller than the target are only re-encoded.
func OptimizePreview(imageData []byte, size string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if size == "thumb" {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	var resized image.Image = img
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		// imaging.Fit keeps the aspect ratio inside a maxDim square
		resized = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
