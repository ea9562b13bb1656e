package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

// MockCropper is a mock implementation of port.Cropper.
type MockCropper struct {
	mock.Mock
}

func (m *MockCropper) Crop(fullCapture []byte, sel domain.SelectionRect, meta *domain.CaptureMetadata) ([]byte, error) {
	args := m.Called(fullCapture, sel, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCaptureSource is a mock implementation of port.CaptureSource.
type MockCaptureSource struct {
	mock.Mock
}

func (m *MockCaptureSource) CapturePage(ctx context.Context, pageURL string) (*port.CaptureOutput, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CaptureOutput), args.Error(1)
}
