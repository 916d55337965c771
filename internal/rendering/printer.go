package rendering

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Format describes the delivery format a Printer produces.
type Format struct {
	Extension   string
	ContentType string
}

var (
	FormatPDF  = Format{Extension: ".pdf", ContentType: "application/pdf"}
	FormatHTML = Format{Extension: ".html", ContentType: "text/html; charset=utf-8"}
)

// Printer converts a rendered HTML document to its delivery format.
type Printer interface {
	Print(ctx context.Context, html []byte) ([]byte, error)
	Format() Format
}

// Batcher is implemented by printers whose setup can be shared by all the
// documents of one submission.
type Batcher interface {
	Begin(ctx context.Context) (Printer, func(), error)
}

// HTMLPrinter delivers documents as HTML. It is used where no Chrome binary
// is available.
type HTMLPrinter struct{}

// Print returns html unchanged.
func (HTMLPrinter) Print(_ context.Context, html []byte) ([]byte, error) {
	return html, nil
}

// Format reports HTML output.
func (HTMLPrinter) Format() Format {
	return FormatHTML
}

// ChromePrinter prints documents to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromePrinter struct {
	Timeout time.Duration
	Verbose bool
}

// NewChromePrinter returns a printer with a 30 second per-document timeout.
func NewChromePrinter(verbose bool) *ChromePrinter {
	return &ChromePrinter{Timeout: 30 * time.Second, Verbose: verbose}
}

// Format reports PDF output.
func (p *ChromePrinter) Format() Format {
	return FormatPDF
}

// Begin starts one headless browser for a batch of documents. The returned
// printer opens a tab per Print call; release closes the browser.
func (p *ChromePrinter) Begin(ctx context.Context) (Printer, func(), error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	release := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// Run with no actions launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		release()
		return nil, func() {}, fmt.Errorf("chrome failed to start: %w", err)
	}
	if p.Verbose {
		log.Printf("[render] started headless browser")
	}
	return &chromeTabs{printer: p, browserCtx: browserCtx}, release, nil
}

// Print prints a single document in a browser of its own. Batches should use
// Begin instead.
func (p *ChromePrinter) Print(ctx context.Context, html []byte) ([]byte, error) {
	tabs, release, err := p.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return tabs.Print(ctx, html)
}

// chromeTabs prints each document in a new tab of a shared browser.
type chromeTabs struct {
	printer    *ChromePrinter
	browserCtx context.Context
}

func (t *chromeTabs) Format() Format {
	return FormatPDF
}

// Print loads html into a blank tab and prints it as a Letter-sized PDF.
func (t *chromeTabs) Print(ctx context.Context, html []byte) ([]byte, error) {
	tabCtx, cancel := chromedp.NewContext(t.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	timeout := t.printer.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome printing failed: %w", err)
	}

	if t.printer.Verbose {
		log.Printf("[render] printed PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

// Begin starts a batch on printer when it supports one. Other printers are
// returned as is with a no-op release.
func Begin(ctx context.Context, printer Printer) (Printer, func(), error) {
	if b, ok := printer.(Batcher); ok {
		return b.Begin(ctx)
	}
	return printer, func() {}, nil
}

// NewPrinter returns the printer for an engine name: "html" selects
// HTMLPrinter, anything else headless Chrome.
func NewPrinter(engine string, verbose bool) Printer {
	if engine == "html" {
		return HTMLPrinter{}
	}
	return NewChromePrinter(verbose)
}
