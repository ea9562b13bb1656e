// Package clipboard routes clipboard writes from the orchestrator through a
// capability-scoped host. The orchestrator itself is forbidden from touching
// the system clipboard; only the host goroutine may.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"snaptex/internal/domain"
	"snaptex/internal/port"
)

// State is the bridge's position in its delivery state machine.
type State string

const (
	StateNoHost   State = "no-host"
	StateCreating State = "creating"
	StateReady    State = "ready"
	StateWriting  State = "writing"
	StateFailed   State = "failed"
)

const hostJustification = "Write recognized text to the system clipboard"

// Bridge implements port.ClipboardBridge. It creates the host on demand,
// tolerates losing the creation race to a concurrent writer, and reports
// every failure as a response rather than an error: the caller must continue
// to the history step regardless of clipboard outcome. The host is never
// torn down here; its lifecycle belongs to the owner that built it.
type Bridge struct {
	host port.ClipboardHost

	mu    sync.Mutex
	state State
}

// NewBridge creates a Bridge over a clipboard host.
func NewBridge(host port.ClipboardHost) *Bridge {
	return &Bridge{host: host, state: StateNoHost}
}

// State returns the bridge's current state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Write delivers a payload to the system clipboard via the host.
func (b *Bridge) Write(ctx context.Context, payload domain.ClipboardPayload) port.WriteResponse {
	if !b.host.Exists(ctx) {
		b.setState(StateCreating)
		err := b.host.Create(ctx, port.CreateParams{
			Reason:        "clipboard access",
			Justification: hostJustification,
		})
		if err != nil && !errors.Is(err, ErrHostAlreadyExists) {
			b.setState(StateFailed)
			return port.WriteResponse{
				Success: false,
				Error:   fmt.Sprintf("creating clipboard host: %v", err),
			}
		}
	}

	b.setState(StateWriting)
	resp := b.host.Send(ctx, port.WriteRequest{
		Type:    port.WriteRequestType,
		Text:    payload.PlainText,
		Entries: payload.Entries,
	})
	b.setState(StateReady)
	return resp
}
