package clipboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

type stubWriter struct {
	name string
	err  error

	mu    sync.Mutex
	calls []port.WriteRequest
}

func (s *stubWriter) Name() string { return s.name }

func (s *stubWriter) Write(req port.WriteRequest) error {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	return s.err
}

func (s *stubWriter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newRequest(text string) port.WriteRequest {
	return port.WriteRequest{Type: port.WriteRequestType, Text: text}
}

func TestHostCreate_SecondCreatorGetsTypedError(t *testing.T) {
	ctx := context.Background()
	h := NewHostWithWriters(time.Second, &stubWriter{name: "ok"})
	defer func() { _ = h.Close(ctx) }()

	require.NoError(t, h.Create(ctx, port.CreateParams{Reason: "clipboard access"}))
	err := h.Create(ctx, port.CreateParams{Reason: "clipboard access"})
	require.ErrorIs(t, err, ErrHostAlreadyExists)
	assert.True(t, h.Exists(ctx))
}

func TestHostSend_BeforeCreateFails(t *testing.T) {
	h := NewHostWithWriters(time.Second, &stubWriter{name: "ok"})

	resp := h.Send(context.Background(), newRequest("hello"))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "not running")
}

func TestHostSend_RejectsUnknownMessageType(t *testing.T) {
	ctx := context.Background()
	h := NewHostWithWriters(time.Second, &stubWriter{name: "ok"})
	require.NoError(t, h.Create(ctx, port.CreateParams{Reason: "clipboard access"}))
	defer func() { _ = h.Close(ctx) }()

	resp := h.Send(ctx, port.WriteRequest{Type: "ping", Text: "hello"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unknown message type")
}

func TestHostWrite_FirstWriterWins(t *testing.T) {
	ctx := context.Background()
	first := &stubWriter{name: "native"}
	second := &stubWriter{name: "command"}
	h := NewHostWithWriters(time.Second, first, second)
	require.NoError(t, h.Create(ctx, port.CreateParams{Reason: "clipboard access"}))
	defer func() { _ = h.Close(ctx) }()

	resp := h.Send(ctx, newRequest("hello"))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, first.callCount())
	assert.Zero(t, second.callCount())
}

func TestHostWrite_FallsBackWhenFirstWriterFails(t *testing.T) {
	ctx := context.Background()
	first := &stubWriter{name: "native", err: errors.New("no native clipboard")}
	second := &stubWriter{name: "command"}
	h := NewHostWithWriters(time.Second, first, second)
	require.NoError(t, h.Create(ctx, port.CreateParams{Reason: "clipboard access"}))
	defer func() { _ = h.Close(ctx) }()

	resp := h.Send(ctx, newRequest("hello"))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, first.callCount())
	assert.Equal(t, 1, second.callCount())
}

func TestHostWrite_AllWritersFailingReportsLastError(t *testing.T) {
	ctx := context.Background()
	first := &stubWriter{name: "native", err: errors.New("no native clipboard")}
	second := &stubWriter{name: "command", err: errors.New("xclip not found")}
	h := NewHostWithWriters(time.Second, first, second)
	require.NoError(t, h.Create(ctx, port.CreateParams{Reason: "clipboard access"}))
	defer func() { _ = h.Close(ctx) }()

	resp := h.Send(ctx, newRequest("hello"))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "xclip not found")
}

func TestHostCreate_ConcurrentCreatorsOneWins(t *testing.T) {
	ctx := context.Background()
	h := NewHostWithWriters(time.Second, &stubWriter{name: "ok"})
	defer func() { _ = h.Close(ctx) }()

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- h.Create(ctx, port.CreateParams{Reason: "clipboard access"})
		}()
	}
	wg.Wait()
	close(errs)

	wins, losses := 0, 0
	for err := range errs {
		if err == nil {
			wins++
		} else if errors.Is(err, ErrHostAlreadyExists) {
			losses++
		} else {
			t.Fatalf("unexpected create error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, losses)

	// Every racer can still write through the single surviving host.
	resp := h.Send(ctx, newRequest("hello"))
	assert.True(t, resp.Success)
}

func TestNativeWriter_DeclinesCustomMimeEntries(t *testing.T) {
	w := NewNativeWriter()
	err := w.Write(port.WriteRequest{
		Type: port.WriteRequestType,
		Text: "hello",
		Entries: []domain.MimeEntry{
			{MimeType: "text/_notion-blocks-v3", Data: "{}"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command fallback")
}

func TestCommandWriter_OverrideSplitsCommand(t *testing.T) {
	w := NewCommandWriter("xclip -selection clipboard")
	assert.Equal(t, "xclip", w.command)
	assert.Equal(t, []string{"-selection", "clipboard"}, w.baseArgs)
}

func TestCommandWriter_NoMimeFlagDeclinesEntries(t *testing.T) {
	// pbcopy-style commands take no target type. A payload with custom MIME
	// entries must fail up front rather than land as text-only and report
	// success. The command never runs, so this holds on any platform.
	w := NewCommandWriter("pbcopy")
	err := w.Write(port.WriteRequest{
		Type: port.WriteRequestType,
		Text: "hello",
		Entries: []domain.MimeEntry{
			{MimeType: "text/_notion-blocks-v3", Data: "{}"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIME target flag")
}
