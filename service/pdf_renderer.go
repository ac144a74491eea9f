package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// PageRendererInterface turns rendered order form HTML into printable output
type PageRendererInterface interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
	CapturePages(ctx context.Context, html string) (map[int][]byte, error)
}

// ChromeRenderer drives a headless Chrome through chromedp
type ChromeRenderer struct {
	chromePath string
	timeout    time.Duration
	logger     *logrus.Entry
}

// NewChromeRenderer creates a ChromeRenderer. An empty chromePath means auto-detect.
func NewChromeRenderer(chromePath string, timeout time.Duration, logger *logrus.Entry) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeRenderer{
		chromePath: detectChromePath(chromePath),
		timeout:    timeout,
		logger:     logger,
	}
}

var _ PageRendererInterface = (*ChromeRenderer)(nil)

// A4 in inches; Chrome rotates the sheet when landscape is set
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

// pageSelector matches one printed page in the order form template
const pageSelector = "section.page"

// detectChromePath checks the configured path first, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// browser starts a Chrome instance bound to ctx. The returned cancel stops it.
func (r *ChromeRenderer) browser(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)

	return chromeCtx, func() {
		cancelChrome()
		cancelAlloc()
		cancelTimeout()
	}
}

// loadHTML replaces the blank page's document with html
func loadHTML(html string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	}
}

// PrintPDF prints the HTML to an A4 landscape PDF. Page breaks come from the template CSS.
func (r *ChromeRenderer) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	chromeCtx, cancel := r.browser(ctx, r.timeout)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(chromeCtx,
		loadHTML(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithPreferCSSPageSize(true).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	r.logger.WithField("bytes", len(pdfBuf)).Debug("📄 PrintPDF: PDF generated")
	return pdfBuf, nil
}

// CapturePages screenshots every page section. Keys are 1-based page numbers.
func (r *ChromeRenderer) CapturePages(ctx context.Context, html string) (map[int][]byte, error) {
	// one screenshot per page takes longer than a single print
	chromeCtx, cancel := r.browser(ctx, 3*r.timeout)
	defer cancel()

	var pageCount int
	err := chromedp.Run(chromeCtx,
		chromedp.EmulateViewport(1123, 794), // A4 landscape at 96 DPI
		loadHTML(html),
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, pageSelector), &pageCount),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load order form: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("no pages found in HTML")
	}

	shots := make(map[int][]byte, pageCount)
	for n := 1; n <= pageCount; n++ {
		var buf []byte
		sel := fmt.Sprintf("%s:nth-of-type(%d)", pageSelector, n)
		if err := chromedp.Run(chromeCtx, chromedp.Screenshot(sel, &buf, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
			return nil, fmt.Errorf("failed to capture page %d: %w", n, err)
		}
		shots[n] = buf
	}

	r.logger.WithField("pages", pageCount).Debug("📸 CapturePages: pages captured")
	return shots, nil
}
