package port

import (
	"context"

	"snaptex/internal/domain"
)

// RecognitionInput carries one image to be recognized.
type RecognitionInput struct {
	ImageBytes         []byte
	ContentType        string
	Format             domain.OutputFormat
	RemoveHeaderFooter bool
}

// Recognizer abstracts the vision-language OCR provider.
type Recognizer interface {
	Recognize(ctx context.Context, input RecognitionInput) (*domain.RecognitionResult, error)
}
