package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

// MockClipboardBridge is a mock implementation of port.ClipboardBridge.
type MockClipboardBridge struct {
	mock.Mock
}

func (m *MockClipboardBridge) Write(ctx context.Context, payload domain.ClipboardPayload) port.WriteResponse {
	args := m.Called(ctx, payload)
	return args.Get(0).(port.WriteResponse)
}

// MockClipboardHost is a mock implementation of port.ClipboardHost.
type MockClipboardHost struct {
	mock.Mock
}

func (m *MockClipboardHost) Exists(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockClipboardHost) Create(ctx context.Context, params port.CreateParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockClipboardHost) Send(ctx context.Context, req port.WriteRequest) port.WriteResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(port.WriteResponse)
}

func (m *MockClipboardHost) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
