package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// NavigationError reports a failure to load or snapshot a target URL.
type NavigationError struct {
	URL   string
	Cause error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s: %v", e.URL, e.Cause)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}

// Renderer is the capability surface the crawler and processor need from a
// rendering engine: navigate, wait, click a control by its visible text, and
// snapshot the live document.
type Renderer interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	HTML(ctx context.Context) (string, error)
	ClickByText(ctx context.Context, label string) (bool, error)
	Sleep(ctx context.Context, d time.Duration) error
}

// Browser drives a single headless Chrome session. One session is shared by
// the whole run; targets are processed sequentially on it.
type Browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewBrowser launches a headless browser session. Launch happens eagerly so a
// missing Chrome binary fails setup instead of the first target.
func NewBrowser(ctx context.Context) (*Browser, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelCtx, cancelAlloc},
	}, nil
}

// Close shuts down the browser session.
func (b *Browser) Close() {
	for _, cancel := range b.cancels {
		cancel()
	}
}

// Navigate loads a URL and waits for the body element to be ready.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	debugLog("navigating to %s", url)
	return chromedp.Run(b.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
}

// WaitVisible waits for the selector to become visible, up to timeout.
func (b *Browser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()
	return chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// HTML returns a snapshot of the current document.
func (b *Browser) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var html string
	if err := chromedp.Run(b.ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", err
	}
	debugLog("captured document snapshot: %d bytes", len(html))
	return html, nil
}

// ClickByText finds a visible button or link whose text contains label,
// scrolls it into view and clicks it. Returns false when no such control
// exists, which ends the pagination loop.
func (b *Browser) ClickByText(ctx context.Context, label string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	labelJSON, err := json.Marshal(label)
	if err != nil {
		return false, err
	}

	script := fmt.Sprintf(`(function(label) {
		const candidates = document.querySelectorAll('button, a, div[role="button"]');
		for (const el of candidates) {
			const text = (el.textContent || '').trim();
			if (text.includes(label) && el.offsetParent !== null) {
				el.scrollIntoView({block: 'center'});
				el.click();
				return true;
			}
		}
		return false;
	})(%s);`, labelJSON)

	var clicked bool
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	debugLog("click %q: clicked=%v", label, clicked)
	return clicked, nil
}

// Sleep suspends for the settle interval, honoring cancellation.
func (b *Browser) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
