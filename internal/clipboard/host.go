package clipboard

import (
	"context"
	"log"
	"sync"
	"time"

	"snaptex/internal/config"
	"snaptex/internal/port"
)

const defaultWriteTimeout = 5 * time.Second

type hostRequest struct {
	req  port.WriteRequest
	resp chan port.WriteResponse
}

// Host implements port.ClipboardHost as a singleton goroutine. All clipboard
// writes are serialized through its loop; the rest of the process never
// touches the system clipboard directly. Requests of any other message type
// are rejected with a failure response.
type Host struct {
	writers []Writer
	timeout time.Duration

	mu      sync.Mutex
	running bool
	reqs    chan hostRequest
	done    chan struct{}
}

// NewHost creates a Host with the standard writer chain: the native
// clipboard binding first, then the platform copy command fallback.
func NewHost(cfg config.ClipboardConfig) *Host {
	return NewHostWithWriters(cfg.WriteTimeout,
		NewNativeWriter(),
		NewCommandWriter(cfg.FallbackCommand),
	)
}

// NewHostWithWriters creates a Host with an explicit writer chain. Writers
// are tried in order; the first success wins.
func NewHostWithWriters(timeout time.Duration, writers ...Writer) *Host {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Host{writers: writers, timeout: timeout}
}

// Exists reports whether the host goroutine is running.
func (h *Host) Exists(_ context.Context) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Create starts the host goroutine. If another creator already started it,
// Create returns ErrHostAlreadyExists and the existing host keeps serving.
func (h *Host) Create(_ context.Context, params port.CreateParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return ErrHostAlreadyExists
	}
	log.Printf("clipboard: host created (%s: %s)", params.Reason, params.Justification)
	h.reqs = make(chan hostRequest)
	h.done = make(chan struct{})
	h.running = true
	go h.loop(h.reqs, h.done)
	return nil
}

// Send delivers a write request to the host goroutine and waits for its
// acknowledgement. All failure modes come back as a response.
func (h *Host) Send(ctx context.Context, req port.WriteRequest) port.WriteResponse {
	if req.Type != port.WriteRequestType {
		return port.WriteResponse{Success: false, Error: "unknown message type: " + req.Type}
	}

	h.mu.Lock()
	reqs, running := h.reqs, h.running
	h.mu.Unlock()
	if !running {
		return port.WriteResponse{Success: false, Error: "clipboard host is not running"}
	}

	hr := hostRequest{req: req, resp: make(chan port.WriteResponse, 1)}
	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case reqs <- hr:
	case <-ctx.Done():
		return port.WriteResponse{Success: false, Error: "clipboard write canceled: " + ctx.Err().Error()}
	case <-timer.C:
		return port.WriteResponse{Success: false, Error: "clipboard host did not accept the write in time"}
	}

	select {
	case resp := <-hr.resp:
		return resp
	case <-ctx.Done():
		return port.WriteResponse{Success: false, Error: "clipboard write canceled: " + ctx.Err().Error()}
	case <-timer.C:
		return port.WriteResponse{Success: false, Error: "clipboard write timed out"}
	}
}

// Close stops the host goroutine. Safe to call when the host never started.
func (h *Host) Close(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return nil
	}
	close(h.done)
	h.running = false
	return nil
}

func (h *Host) loop(reqs chan hostRequest, done chan struct{}) {
	for {
		select {
		case hr := <-reqs:
			hr.resp <- h.write(hr.req)
		case <-done:
			return
		}
	}
}

func (h *Host) write(req port.WriteRequest) port.WriteResponse {
	var lastErr error
	for _, w := range h.writers {
		if err := w.Write(req); err != nil {
			log.Printf("clipboard: %s writer failed: %v", w.Name(), err)
			lastErr = err
			continue
		}
		return port.WriteResponse{Success: true}
	}
	if lastErr == nil {
		return port.WriteResponse{Success: false, Error: "no clipboard writers configured"}
	}
	return port.WriteResponse{Success: false, Error: lastErr.Error()}
}
