// Package gemini implements port.Recognizer against Google's Gemini API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snaptex/internal/config"
	"snaptex/internal/domain"
	"snaptex/internal/port"
	"snaptex/internal/recognizer"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	maxAttempts = 3
)

var backoffBase = time.Second

// Client implements port.Recognizer using the Gemini REST API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewClient creates a Gemini-based recognizer.
func NewClient(cfg *config.RecognizerConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.RecognizerConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.RecognizerConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Client{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    model,
		endpoint: endpoint,
		timeout:  timeout,
		// No transport-level timeout: the per-attempt deadline races the
		// call, and the loser is abandoned rather than cancelled.
		client: &http.Client{},
	}
}

// Recognize sends the image to Gemini and returns the recognized text.
// Up to 3 attempts with linear backoff (1s, then 2s); HTTP 400 re-raises
// immediately since the request itself is malformed.
func (c *Client) Recognize(ctx context.Context, input port.RecognitionInput) (*domain.RecognitionResult, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	prompt := recognizer.BuildPrompt(input.Format, input.RemoveHeaderFooter)
	body, err := buildRequestBody(prompt, input)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * backoffBase
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		text, err := c.attempt(ctx, body)
		if err == nil {
			return &domain.RecognitionResult{
				Text:      text,
				Timestamp: time.Now().UnixMilli(),
			}, nil
		}

		var pe *recognizer.ProviderError
		if errors.As(err, &pe) && pe.StatusCode == http.StatusBadRequest {
			return nil, err
		}
		lastErr = err
	}
	return nil, &recognizer.RecognitionFailedError{Attempts: maxAttempts, Err: lastErr}
}

// attempt races one network call against the fixed deadline. Whichever
// settles first wins; a timed-out call keeps running in its goroutine and is
// discarded.
func (c *Client) attempt(ctx context.Context, body []byte) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := c.call(ctx, body)
		done <- outcome{text, err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.text, o.err
	case <-timer.C:
		return "", recognizer.ErrAttemptTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Client) call(ctx context.Context, body []byte) (string, error) {
	endpoint := c.endpoint
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &recognizer.ProviderError{
			Provider:   "gemini",
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 500),
		}
	}

	return extractText(respBody)
}

func buildRequestBody(prompt string, input port.RecognitionInput) ([]byte, error) {
	if _, ok := domain.AllowedImageContentTypes[input.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, input.ContentType)
	}
	encoded := base64.StdEncoding.EncodeToString(input.ImageBytes)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": input.ContentType,
							"data":      encoded,
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return body, nil
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func extractText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", recognizer.ErrMalformedResponse, err)
	}
	if len(resp.Candidates) == 0 {
		return "", recognizer.ErrEmptyResult
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", recognizer.ErrEmptyResult
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", recognizer.ErrEmptyResult
	}
	return text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
