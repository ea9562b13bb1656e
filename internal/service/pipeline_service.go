package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"snaptex/internal/capture"
	"snaptex/internal/config"
	"snaptex/internal/domain"
	"snaptex/internal/notion"
	"snaptex/internal/port"
	"snaptex/internal/textproc"
)

// maxRemoteImageBytes bounds image downloads for the URL flow.
const maxRemoteImageBytes = 20 << 20

// CaptureInput is the DTO for the area-capture flow: a full-viewport capture
// pushed by the extension plus the user's selection.
type CaptureInput struct {
	ImageData string                  `json:"image_data" binding:"required"`
	Selection domain.SelectionRect    `json:"selection"`
	Metadata  *domain.CaptureMetadata `json:"metadata"`
	Format    domain.OutputFormat     `json:"format"`
	Cleanup   *domain.CleanupOptions  `json:"cleanup"`
}

// PageCaptureInput is the DTO for the server-side page-capture flow.
type PageCaptureInput struct {
	PageURL   string                 `json:"page_url" binding:"required,url"`
	Selection domain.SelectionRect   `json:"selection"`
	Format    domain.OutputFormat    `json:"format"`
	Cleanup   *domain.CleanupOptions `json:"cleanup"`
}

// ImageURLInput is the DTO for recognizing a remote image without cropping.
type ImageURLInput struct {
	ImageURL string                 `json:"image_url" binding:"required,url"`
	Format   domain.OutputFormat    `json:"format"`
	Cleanup  *domain.CleanupOptions `json:"cleanup"`
}

// RecognizeOutput is the result of one full pipeline run. Clipboard reports
// the delivery outcome; a failed delivery does not fail the run.
type RecognizeOutput struct {
	HistoryID uuid.UUID          `json:"history_id"`
	Text      string             `json:"text"`
	Timestamp int64              `json:"timestamp"`
	ImageURL  string             `json:"image_url,omitempty"`
	Clipboard port.WriteResponse `json:"clipboard"`
}

// PipelineService runs the capture-to-clipboard pipeline.
type PipelineService interface {
	Recognize(ctx context.Context, input CaptureInput) (*RecognizeOutput, error)
	RecognizePage(ctx context.Context, input PageCaptureInput) (*RecognizeOutput, error)
	RecognizeURL(ctx context.Context, input ImageURLInput) (*RecognizeOutput, error)
}

type pipelineService struct {
	cropper    port.Cropper
	source     port.CaptureSource
	recognizer port.Recognizer
	bridge     port.ClipboardBridge
	history    port.HistoryRepository
	storage    port.ObjectStorage
	httpClient *http.Client

	bucket         string
	defaultFormat  domain.OutputFormat
	defaultCleanup domain.CleanupOptions
}

// NewPipelineService creates a PipelineService implementation.
func NewPipelineService(
	cropper port.Cropper,
	source port.CaptureSource,
	recognizer port.Recognizer,
	bridge port.ClipboardBridge,
	history port.HistoryRepository,
	storage port.ObjectStorage,
	cfg *config.Config,
) PipelineService {
	return &pipelineService{
		cropper:       cropper,
		source:        source,
		recognizer:    recognizer,
		bridge:        bridge,
		history:       history,
		storage:       storage,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		bucket:        cfg.Storage.Bucket,
		defaultFormat: domain.OutputFormat(cfg.Recognizer.DefaultFormat),
		defaultCleanup: domain.CleanupOptions{
			RemoveLineBreaks:   cfg.Cleanup.RemoveLineBreaks,
			MergeSpaces:        cfg.Cleanup.MergeSpaces,
			RemoveHeaderFooter: cfg.Cleanup.RemoveHeaderFooter,
		},
	}
}

func (s *pipelineService) Recognize(ctx context.Context, input CaptureInput) (*RecognizeOutput, error) {
	format, cleanup, err := s.resolveOptions(input.Format, input.Cleanup)
	if err != nil {
		return nil, err
	}

	contentType, raw, err := capturePayload(input.ImageData)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.AllowedImageContentTypes[contentType]; contentType != "" && !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, contentType)
	}

	cropped, err := s.cropper.Crop(raw, input.Selection, input.Metadata)
	if err != nil {
		return nil, err
	}

	return s.recognizeAndDeliver(ctx, cropped, "image/png", format, cleanup)
}

func (s *pipelineService) RecognizePage(ctx context.Context, input PageCaptureInput) (*RecognizeOutput, error) {
	format, cleanup, err := s.resolveOptions(input.Format, input.Cleanup)
	if err != nil {
		return nil, err
	}

	shot, err := s.source.CapturePage(ctx, input.PageURL)
	if err != nil {
		return nil, err
	}

	image := shot.ImageBytes
	contentType := shot.ContentType
	if !input.Selection.Empty() {
		// The cropper always re-encodes to PNG.
		image, err = s.cropper.Crop(shot.ImageBytes, input.Selection, &shot.Metadata)
		if err != nil {
			return nil, err
		}
		contentType = "image/png"
	}

	return s.recognizeAndDeliver(ctx, image, contentType, format, cleanup)
}

func (s *pipelineService) RecognizeURL(ctx context.Context, input ImageURLInput) (*RecognizeOutput, error) {
	format, cleanup, err := s.resolveOptions(input.Format, input.Cleanup)
	if err != nil {
		return nil, err
	}

	contentType, image, err := s.fetchImage(ctx, input.ImageURL)
	if err != nil {
		return nil, err
	}

	return s.recognizeAndDeliver(ctx, image, contentType, format, cleanup)
}

// recognizeAndDeliver is the shared tail of every flow: recognize, clean,
// deliver to the clipboard, persist the capture image and the history
// record. Recognition failure aborts before anything is persisted; clipboard
// and image-storage failures are recorded but never abort the run.
func (s *pipelineService) recognizeAndDeliver(
	ctx context.Context,
	image []byte,
	contentType string,
	format domain.OutputFormat,
	cleanup domain.CleanupOptions,
) (*RecognizeOutput, error) {
	result, err := s.recognizer.Recognize(ctx, port.RecognitionInput{
		ImageBytes:         image,
		ContentType:        contentType,
		Format:             format,
		RemoveHeaderFooter: cleanup.RemoveHeaderFooter,
	})
	if err != nil {
		return nil, err
	}

	text := textproc.Process(result.Text, cleanup)

	payload := domain.ClipboardPayload{PlainText: text}
	if format == domain.FormatStructured {
		payload, err = notion.BuildClipboardPayload(text, true)
		if err != nil {
			log.Printf("pipeline: building block payload failed, falling back to plain text: %v", err)
			payload = domain.ClipboardPayload{PlainText: text}
		}
	}

	clipResp := s.bridge.Write(ctx, payload)
	if !clipResp.Success {
		log.Printf("pipeline: clipboard delivery failed: %s", clipResp.Error)
	}

	imageKey := s.storeImage(ctx, image, contentType)

	debug, _ := json.Marshal(map[string]any{
		"format":    format,
		"cleanup":   cleanup,
		"clipboard": clipResp,
	})
	record, err := s.history.Append(ctx, &domain.HistoryRecord{
		Text:      text,
		Timestamp: result.Timestamp,
		ImageURL:  imageKey,
		Debug:     debug,
	})
	if err != nil {
		return nil, fmt.Errorf("appending history: %w", err)
	}

	return &RecognizeOutput{
		HistoryID: record.ID,
		Text:      text,
		Timestamp: result.Timestamp,
		ImageURL:  imageKey,
		Clipboard: clipResp,
	}, nil
}

func (s *pipelineService) resolveOptions(format domain.OutputFormat, cleanup *domain.CleanupOptions) (domain.OutputFormat, domain.CleanupOptions, error) {
	if format == "" {
		format = s.defaultFormat
	}
	if !domain.ValidFormat(format) {
		return "", domain.CleanupOptions{}, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, format)
	}
	if cleanup != nil {
		return format, *cleanup, nil
	}
	return format, s.defaultCleanup, nil
}

// storeImage uploads the recognized image and returns its storage key, or
// an empty key when storage is unavailable.
func (s *pipelineService) storeImage(ctx context.Context, image []byte, contentType string) string {
	if s.storage == nil {
		return ""
	}

	ext := "png"
	if t, ok := domain.AllowedImageContentTypes[contentType]; ok {
		ext = string(t)
	}
	key := fmt.Sprintf("%s/%s.%s", time.Now().UTC().Format("2006/01/02"), uuid.New(), ext)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(image),
		ContentType: contentType,
		Size:        int64(len(image)),
	})
	if err != nil {
		log.Printf("pipeline: storing capture image failed: %v", err)
		return ""
	}
	return key
}

func (s *pipelineService) fetchImage(ctx context.Context, imageURL string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrImageFetch, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: status %d", domain.ErrImageFetch, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if _, ok := domain.AllowedImageContentTypes[contentType]; !ok {
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageBytes))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrImageFetch, err)
	}
	return contentType, data, nil
}

// capturePayload decodes the pushed capture, which arrives either as a data
// URL or as bare base64.
func capturePayload(imageData string) (string, []byte, error) {
	contentType, raw, err := capture.DecodeDataURL(imageData)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrCaptureDecode, err)
	}
	return contentType, raw, nil
}
