package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"snaptex/internal/service"
)

// MockPipelineService is a mock implementation of service.PipelineService.
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) Recognize(ctx context.Context, input service.CaptureInput) (*service.RecognizeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecognizeOutput), args.Error(1)
}

func (m *MockPipelineService) RecognizePage(ctx context.Context, input service.PageCaptureInput) (*service.RecognizeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecognizeOutput), args.Error(1)
}

func (m *MockPipelineService) RecognizeURL(ctx context.Context, input service.ImageURLInput) (*service.RecognizeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecognizeOutput), args.Error(1)
}
