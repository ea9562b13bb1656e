package port

import (
	"context"

	"snaptex/internal/domain"
)

// WriteRequestType is the single message type of the clipboard protocol.
const WriteRequestType = "clipboard-write"

// WriteRequest is the message sent from the orchestrator to the clipboard
// host.
type WriteRequest struct {
	Type    string             `json:"type"`
	Text    string             `json:"text"`
	Entries []domain.MimeEntry `json:"customMimeTypes,omitempty"`
}

// WriteResponse is the host's acknowledgement. Failures are reported here,
// never raised: the orchestrator must continue to the history step
// regardless of clipboard outcome.
type WriteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CreateParams declares why a clipboard host is being created. The host
// platform requires a justification and a capability reason up front.
type CreateParams struct {
	Reason        string
	Justification string
}

// ClipboardHost is the capability-scoped context that alone may touch the
// system clipboard. Create returns clipboard.ErrHostAlreadyExists when a
// concurrent creator won the race; callers treat that as success.
type ClipboardHost interface {
	Exists(ctx context.Context) bool
	Create(ctx context.Context, params CreateParams) error
	Send(ctx context.Context, req WriteRequest) WriteResponse
	Close(ctx context.Context) error
}

// ClipboardBridge routes clipboard writes from the orchestrator through the
// capability-scoped host.
type ClipboardBridge interface {
	Write(ctx context.Context, payload domain.ClipboardPayload) WriteResponse
}
