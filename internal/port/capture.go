package port

import (
	"context"

	"snaptex/internal/domain"
)

// CaptureOutput is a full-viewport screenshot plus the scale metadata needed
// to map CSS-pixel selections onto its pixel grid.
type CaptureOutput struct {
	ImageBytes  []byte
	ContentType string
	Metadata    domain.CaptureMetadata
}

// CaptureSource produces full-viewport captures of a page.
type CaptureSource interface {
	CapturePage(ctx context.Context, pageURL string) (*CaptureOutput, error)
}

// Cropper maps a CSS-pixel selection onto a captured image and returns the
// encoded crop.
type Cropper interface {
	Crop(fullCapture []byte, sel domain.SelectionRect, meta *domain.CaptureMetadata) ([]byte, error)
}
