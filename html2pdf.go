package marksnap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alnah/marksnap/internal/process"
)

// pdfRenderer renders a local HTML file to PDF bytes.
// The interface lets tests run without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)

// PageSize names a supported paper format.
type PageSize string

// Supported page sizes.
const (
	PageLetter PageSize = "letter"
	PageA4     PageSize = "a4"
	PageLegal  PageSize = "legal"
)

// pageDimensions holds width and height in inches.
var pageDimensions = map[PageSize][2]float64{
	PageLetter: {8.5, 11},
	PageA4:     {8.27, 11.69},
	PageLegal:  {8.5, 14},
}

// ParsePageSize converts a user value into a PageSize (case-insensitive).
// An empty value yields PageLetter.
func ParsePageSize(s string) (PageSize, error) {
	if s == "" {
		return PageLetter, nil
	}
	p := PageSize(strings.ToLower(s))
	if _, ok := pageDimensions[p]; !ok {
		return "", fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPage, s)
	}
	return p, nil
}

const (
	marginInches   = 0.5
	defaultTimeout = 30 * time.Second
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	page     PageSize
}

func newRodRenderer(timeout time.Duration, page PageSize) *rodRenderer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &rodRenderer{timeout: timeout, page: page}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser, r.launcher = b, l
	return nil
}

// Close releases the browser and kills any leftover Chrome processes.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.browser, r.launcher = nil, nil
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.loadTimeout(ctx)
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(r.printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// loadTimeout returns the configured timeout, shortened to the time left
// before ctx's deadline when that comes first.
func (r *rodRenderer) loadTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		return min(r.timeout, time.Until(deadline))
	}
	return r.timeout
}

// printOptions builds the Chrome print settings for the configured page.
func (r *rodRenderer) printOptions() *proto.PagePrintToPDF {
	dims, ok := pageDimensions[r.page]
	if !ok {
		dims = pageDimensions[PageLetter]
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(dims[0]),
		PaperHeight:     floatPtr(dims[1]),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

// pdfcpuConfigOnce keeps pdfcpu from creating its config directory.
var pdfcpuConfigOnce sync.Once

// validatePDF checks that Chrome produced a well-formed document.
func validatePDF(pdf []byte) error {
	if len(pdf) == 0 {
		return fmt.Errorf("%w: empty output", ErrInvalidPDF)
	}
	pdfcpuConfigOnce.Do(api.DisableConfigDir)
	if err := api.Validate(bytes.NewReader(pdf), nil); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}
