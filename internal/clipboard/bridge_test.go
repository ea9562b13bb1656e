package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

type fakeHost struct {
	exists    bool
	createErr error
	sendResp  port.WriteResponse

	createCalls int
	sent        []port.WriteRequest
}

func (f *fakeHost) Exists(context.Context) bool { return f.exists }

func (f *fakeHost) Create(context.Context, port.CreateParams) error {
	f.createCalls++
	return f.createErr
}

func (f *fakeHost) Send(_ context.Context, req port.WriteRequest) port.WriteResponse {
	f.sent = append(f.sent, req)
	return f.sendResp
}

func (f *fakeHost) Close(context.Context) error { return nil }

func TestBridgeWrite_CreatesHostWhenMissing(t *testing.T) {
	host := &fakeHost{exists: false, sendResp: port.WriteResponse{Success: true}}
	b := NewBridge(host)

	resp := b.Write(context.Background(), domain.ClipboardPayload{PlainText: "hello"})

	assert.True(t, resp.Success)
	assert.Equal(t, 1, host.createCalls)
	require.Len(t, host.sent, 1)
	assert.Equal(t, port.WriteRequestType, host.sent[0].Type)
	assert.Equal(t, "hello", host.sent[0].Text)
	assert.Equal(t, StateReady, b.State())
}

func TestBridgeWrite_ExistingHostSkipsCreation(t *testing.T) {
	host := &fakeHost{exists: true, sendResp: port.WriteResponse{Success: true}}
	b := NewBridge(host)

	resp := b.Write(context.Background(), domain.ClipboardPayload{PlainText: "hello"})

	assert.True(t, resp.Success)
	assert.Zero(t, host.createCalls)
	assert.Len(t, host.sent, 1)
}

func TestBridgeWrite_LostCreationRaceStillSucceeds(t *testing.T) {
	host := &fakeHost{
		exists:    false,
		createErr: ErrHostAlreadyExists,
		sendResp:  port.WriteResponse{Success: true},
	}
	b := NewBridge(host)

	resp := b.Write(context.Background(), domain.ClipboardPayload{PlainText: "hello"})

	assert.True(t, resp.Success)
	assert.Len(t, host.sent, 1)
}

func TestBridgeWrite_CreationFailureReturnsResponse(t *testing.T) {
	host := &fakeHost{exists: false, createErr: errors.New("no display")}
	b := NewBridge(host)

	resp := b.Write(context.Background(), domain.ClipboardPayload{PlainText: "hello"})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "no display")
	assert.Empty(t, host.sent)
	assert.Equal(t, StateFailed, b.State())
}

func TestBridgeWrite_SendFailurePropagatesAsResponse(t *testing.T) {
	host := &fakeHost{
		exists:   true,
		sendResp: port.WriteResponse{Success: false, Error: "write denied"},
	}
	b := NewBridge(host)

	resp := b.Write(context.Background(), domain.ClipboardPayload{PlainText: "hello"})

	assert.False(t, resp.Success)
	assert.Equal(t, "write denied", resp.Error)
}

func TestBridgeWrite_ForwardsCustomMimeEntries(t *testing.T) {
	host := &fakeHost{exists: true, sendResp: port.WriteResponse{Success: true}}
	b := NewBridge(host)

	payload := domain.ClipboardPayload{
		PlainText: "E=mc^2",
		Entries: []domain.MimeEntry{
			{MimeType: "text/_notion-blocks-v3", Data: `{"blocks":[]}`},
		},
	}
	resp := b.Write(context.Background(), payload)

	assert.True(t, resp.Success)
	require.Len(t, host.sent, 1)
	require.Len(t, host.sent[0].Entries, 1)
	assert.Equal(t, "text/_notion-blocks-v3", host.sent[0].Entries[0].MimeType)
}
