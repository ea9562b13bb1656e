package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SelectionRect is a user-selected region in CSS pixels relative to the
// viewport. Produced by the on-page selection UI; immutable once captured.
type SelectionRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the selection covers no area. A zero-area selection
// is a degenerate but valid input, not an error.
func (r SelectionRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ViewportSize is the CSS-pixel size of the captured viewport.
type ViewportSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CaptureMetadata describes the scaling between CSS pixels and the raw pixel
// grid of the captured image. A nil CaptureMetadata means 1:1 scale.
type CaptureMetadata struct {
	DevicePixelRatio float64      `json:"device_pixel_ratio"`
	ZoomLevel        float64      `json:"zoom_level"`
	Viewport         ViewportSize `json:"viewport"`
}

// RecognitionResult is the outcome of one successful recognition call.
// Never mutated after creation.
type RecognitionResult struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch millis at response parse time
}

// CleanupOptions are the text post-processing toggles applied to raw
// recognized text. RemoveHeaderFooter additionally appends a prompt suffix
// at recognition time so the model itself skips running headers.
type CleanupOptions struct {
	RemoveLineBreaks   bool `json:"remove_line_breaks"`
	MergeSpaces        bool `json:"merge_spaces"`
	RemoveHeaderFooter bool `json:"remove_header_footer"`
}

// MimeEntry is one custom-MIME channel of a clipboard payload.
type MimeEntry struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// ClipboardPayload is the unit handed to the clipboard bridge. Entries is
// empty unless the structured block format was requested; PlainText always
// carries the raw recognized text so paste works everywhere.
type ClipboardPayload struct {
	PlainText string      `json:"plain_text"`
	Entries   []MimeEntry `json:"entries,omitempty"`
}

// HistoryRecord is one persisted recognition outcome. Written after every
// recognition that yields text, whether or not clipboard delivery succeeded.
type HistoryRecord struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Text      string          `db:"text" json:"text"`
	Timestamp int64           `db:"timestamp" json:"timestamp"`
	ImageURL  string          `db:"image_url" json:"image_url"`
	Debug     json.RawMessage `db:"debug" json:"debug,omitempty"`
}
