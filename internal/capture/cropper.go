// Package capture turns full-viewport screen captures into pixel-accurate
// crops of a CSS-pixel selection.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	_ "image/jpeg"

	"snaptex/internal/domain"
)

// ImageCropper implements port.Cropper over the standard image codecs.
type ImageCropper struct{}

// NewCropper creates an ImageCropper.
func NewCropper() *ImageCropper {
	return &ImageCropper{}
}

// Crop maps the CSS-pixel selection onto the captured image's raw pixel grid
// and returns the crop re-encoded as PNG. The capture/viewport size ratio
// folds device pixel ratio and browser zoom into one pair of scale factors;
// absent metadata means 1:1. A zero-area selection yields a degenerate
// 1×1 transparent image, not an error. Decode failure is fatal and
// propagates; retrying is the caller's concern.
func (c *ImageCropper) Crop(fullCapture []byte, sel domain.SelectionRect, meta *domain.CaptureMetadata) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(fullCapture))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptureDecode, err)
	}
	bounds := src.Bounds()

	scaleX, scaleY := 1.0, 1.0
	if meta != nil && meta.Viewport.Width > 0 && meta.Viewport.Height > 0 {
		scaleX = float64(bounds.Dx()) / meta.Viewport.Width
		scaleY = float64(bounds.Dy()) / meta.Viewport.Height
	}

	x0 := bounds.Min.X + int(math.Round(sel.X*scaleX))
	y0 := bounds.Min.Y + int(math.Round(sel.Y*scaleY))
	x1 := x0 + int(math.Round(sel.Width*scaleX))
	y1 := y0 + int(math.Round(sel.Height*scaleY))

	rect := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if rect.Empty() {
		// PNG cannot encode a zero-size canvas; a transparent pixel stands
		// in for the empty crop.
		return encodePNG(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return encodePNG(dst)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding crop: %w", err)
	}
	return buf.Bytes(), nil
}
