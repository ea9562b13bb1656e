package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"snaptex/internal/config"
	"snaptex/internal/domain"
	"snaptex/internal/port"
)

// RodSource produces full-viewport captures by driving a browser over CDP.
// It implements port.CaptureSource for the page-capture flow; the extension
// push flow supplies its own capture bytes and never touches this.
type RodSource struct {
	cfg config.BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodSource creates a RodSource. The browser is launched lazily on the
// first capture.
func NewRodSource(cfg config.BrowserConfig) *RodSource {
	if cfg.NavTimeout == 0 {
		cfg.NavTimeout = 30 * time.Second
	}
	return &RodSource{cfg: cfg}
}

func (s *RodSource) connect() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		return s.browser, nil
	}

	controlURL := s.cfg.RemoteURL
	if controlURL == "" {
		var err error
		controlURL, err = launcher.New().Headless(true).Launch()
		if err != nil {
			return nil, fmt.Errorf("launching browser: %w", err)
		}
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	s.browser = b
	return b, nil
}

// CapturePage navigates to pageURL and returns a full-viewport PNG plus the
// scale metadata read from the live page.
func (s *RodSource) CapturePage(ctx context.Context, pageURL string) (*port.CaptureOutput, error) {
	b, err := s.connect()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer func() { _ = page.Close() }()

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}

	res, err := page.Context(ctx).Eval(`() => ({
		dpr: window.devicePixelRatio,
		width: window.innerWidth,
		height: window.innerHeight,
	})`)
	if err != nil {
		return nil, fmt.Errorf("reading viewport metrics: %w", err)
	}
	meta := domain.CaptureMetadata{
		DevicePixelRatio: res.Value.Get("dpr").Num(),
		ZoomLevel:        1,
		Viewport: domain.ViewportSize{
			Width:  res.Value.Get("width").Num(),
			Height: res.Value.Get("height").Num(),
		},
	}

	img, err := page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}

	return &port.CaptureOutput{
		ImageBytes:  img,
		ContentType: "image/png",
		Metadata:    meta,
	}, nil
}

// Close shuts down the launched browser, if any.
func (s *RodSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	return err
}
