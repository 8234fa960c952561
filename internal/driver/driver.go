// Package driver drives a headless browser over one seed URL at a time and
// surfaces every network response the page triggers as a ResponseEvent.
package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"browse-rec/internal/pipeline"
)

// Config holds browser launch settings.
type Config struct {
	ChromiumPath string
	Proxy        string
	ShowBrowser  bool
	NoSandbox    bool
	// SettleWait is how long to keep the page open after load so late XHR
	// responses are still captured.
	SettleWait time.Duration
}

// DefaultConfig returns the launch settings used when none are provided.
func DefaultConfig() Config {
	return Config{
		NoSandbox:  true,
		SettleWait: 2 * time.Second,
	}
}

// Driver owns a browser allocator shared by every navigation of a run.
type Driver struct {
	cfg         Config
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// New prepares the browser allocator. The browser process itself is spawned
// lazily on the first navigation.
func New(ctx context.Context, cfg Config) *Driver {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if cfg.ChromiumPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromiumPath))
	}
	if cfg.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.Proxy))
	}
	if cfg.ShowBrowser {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	return &Driver{cfg: cfg, allocCtx: allocCtx, allocCancel: allocCancel}
}

// Close tears down the allocator and any browser it spawned.
func (d *Driver) Close() {
	d.allocCancel()
}

// Navigate opens the URL in a fresh tab, waits for the page to load plus the
// settle window, and then invokes handle once per captured network response,
// in arrival order, while the tab is still open so lazy body fetches can
// reach the browser. The handler runs synchronously to completion for each
// event before the next one is delivered. When navigation fails (timeout,
// connection error) the responses captured up to that point are still
// delivered and the error is returned afterwards.
func (d *Driver) Navigate(parent context.Context, rawURL string, timeout time.Duration, handle func(pipeline.ResponseEvent)) error {
	tabCtx, cancelTab := chromedp.NewContext(d.allocCtx)
	defer cancelTab()
	stop := context.AfterFunc(parent, cancelTab)
	defer stop()

	runCtx, cancelRun := context.WithTimeout(tabCtx, timeout)
	defer cancelRun()

	var mu sync.Mutex
	var captured []capturedResponse

	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		mu.Lock()
		captured = append(captured, capturedResponse{
			url:       resp.Response.URL,
			headers:   flattenHeaders(resp.Response.Headers),
			requestID: resp.RequestID,
		})
		mu.Unlock()
	})

	navErr := chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if navErr != nil {
		navErr = fmt.Errorf("navegar a %s: %w", rawURL, navErr)
	} else {
		select {
		case <-time.After(d.cfg.SettleWait):
		case <-runCtx.Done():
		}
	}

	// Body fetches must go through the tab's own executor.
	tab := chromedp.FromContext(tabCtx)
	execCtx := cdp.WithExecutor(tabCtx, tab.Target)

	mu.Lock()
	events := captured
	captured = nil
	mu.Unlock()

	// A page that never finished loading still produced real responses;
	// they are delivered before the navigation error is reported.
	deliverCaptured(execCtx, events, handle)
	return navErr
}

type capturedResponse struct {
	url       string
	headers   map[string]string
	requestID network.RequestID
}

// deliverCaptured hands each captured response to the handler in arrival
// order. It runs whether or not the navigation itself succeeded; a body the
// tab can no longer serve surfaces as the lazy accessor's error and the
// event degrades to its URL and header findings.
func deliverCaptured(execCtx context.Context, events []capturedResponse, handle func(pipeline.ResponseEvent)) {
	for _, r := range events {
		handle(pipeline.ResponseEvent{
			URL:     r.url,
			Headers: r.headers,
			Body:    bodyFetcher(execCtx, r.requestID),
		})
	}
}

// bodyFetcher returns a lazy, memoized accessor for a response body. A
// failed fetch (binary response, evicted body, closed tab) is reported as an
// error for the caller to skip, never retried.
func bodyFetcher(execCtx context.Context, id network.RequestID) func() (string, error) {
	var once sync.Once
	var body string
	var err error
	return func() (string, error) {
		once.Do(func() {
			var raw []byte
			raw, err = network.GetResponseBody(id).Do(execCtx)
			if err == nil {
				body = string(raw)
			}
		})
		return body, err
	}
}

func flattenHeaders(h network.Headers) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for name, value := range h {
		out[name] = fmt.Sprint(value)
	}
	return out
}
