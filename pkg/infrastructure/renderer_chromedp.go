package infrastructure

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"resume-builder/internal/config"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4: 210mm x 297mm -> inches: 8.27 x 11.69
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
	cssPxPerIn = 96.0
	mmPerIn    = 25.4
	minScale   = 0.1

	// viewport of one A4 page at 96 dpi, rounded to whole pixels
	a4WidthPx  = 794
	a4HeightPx = 1123
)

// ChromedpRenderer prints HTML with headless Chrome, shrinking the page so
// the whole résumé fits on a single A4 sheet.
type ChromedpRenderer struct {
	chromePath string
	timeout    time.Duration
	marginIn   float64
}

func NewChromedpRenderer(cfg config.RenderConfig) *ChromedpRenderer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{
		chromePath: cfg.ChromePath,
		timeout:    timeout,
		marginIn:   cfg.MarginMM / mmPerIn,
	}
}

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(a4WidthPx, a4HeightPx),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var contentHeight float64
	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.documentElement.scrollHeight`, &contentHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(r.marginIn).
				WithMarginBottom(r.marginIn).
				WithMarginLeft(r.marginIn).
				WithMarginRight(r.marginIn).
				WithScale(r.fitScale(contentHeight)).
				WithPageRanges("1").
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp print: %w", err)
	}
	return pdfBuf, nil
}

// fitScale is the print scale that makes contentHeight CSS pixels fit the
// printable height of one page.
func (r *ChromedpRenderer) fitScale(contentHeight float64) float64 {
	printable := (a4HeightIn - 2*r.marginIn) * cssPxPerIn
	if contentHeight <= 0 || contentHeight <= printable {
		return 1
	}
	scale := math.Floor(printable/contentHeight*1000) / 1000
	return math.Max(scale, minScale)
}
