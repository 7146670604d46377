package marksnap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/marksnap/internal/fileutil"
	"github.com/alnah/marksnap/internal/pipeline"
)

// filePermissions is used for output files: rw-r--r--.
const filePermissions = 0o644

// Compile-time interface check.
var _ Backends = (*Renderer)(nil)

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// PageSize is the paper format for PDF output (default letter).
	PageSize PageSize

	// Timeout bounds page load and print for one PDF (default 30s).
	Timeout time.Duration

	// Browsers is the number of headless browsers kept for PDF output
	// (0 = auto).
	Browsers int
}

// Renderer is the default Backends implementation.
// HTML output is produced in-process; PDF output goes through a pool of
// headless Chrome instances started on first use.
// Renderer is safe for concurrent use. Call Close to release browsers.
type Renderer struct {
	html     pipeline.HTMLConverter
	pool     *RendererPool
	validate func([]byte) error
}

// NewRenderer creates a Renderer. No browser is started until the first PDF.
func NewRenderer(opts RendererOptions) *Renderer {
	page := opts.PageSize
	if page == "" {
		page = PageLetter
	}
	timeout := opts.Timeout
	return &Renderer{
		html: pipeline.NewGoldmarkConverter(),
		pool: newRendererPool(ResolvePoolSize(opts.Browsers), func() pdfRenderer {
			return newRodRenderer(timeout, page)
		}),
		validate: validatePDF,
	}
}

// ToHTML converts sourcePath into a standalone HTML document at destPath.
func (r *Renderer) ToHTML(ctx context.Context, sourcePath, destPath string) error {
	doc, err := r.document(ctx, sourcePath)
	if err != nil {
		return err
	}

	out, err := doc.HTML()
	if err != nil {
		return err
	}
	return writeOutput(destPath, []byte(out))
}

// ToPDF converts sourcePath into a PDF at destPath.
// Relative image and link targets are resolved against the source directory
// because the browser loads the page from a temporary location.
func (r *Renderer) ToPDF(ctx context.Context, sourcePath, destPath string) error {
	doc, err := r.document(ctx, sourcePath)
	if err != nil {
		return err
	}
	if err := doc.RewriteRelativePaths(filepath.Dir(sourcePath)); err != nil {
		return err
	}

	out, err := doc.HTML()
	if err != nil {
		return err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(out, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer cleanup()

	renderer, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	pdf, err := renderer.RenderFromFile(ctx, tmpPath)
	r.pool.Release(renderer)
	if err != nil {
		return err
	}

	if err := r.validate(pdf); err != nil {
		return err
	}
	return writeOutput(destPath, pdf)
}

// Close releases every browser started by the Renderer.
func (r *Renderer) Close() error {
	return r.pool.Close()
}

// document reads and converts the Markdown source, titling the result after
// its first heading or, failing that, the source file name.
func (r *Renderer) document(ctx context.Context, sourcePath string) (*pipeline.Document, error) {
	content, err := os.ReadFile(sourcePath) // #nosec G304 -- user-provided source path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	htmlContent, err := r.html.ToHTML(ctx, string(content))
	if err != nil {
		return nil, err
	}

	doc, err := pipeline.ParseDocument(htmlContent)
	if err != nil {
		return nil, err
	}
	doc.SetTitle(Stem(sourcePath))
	return doc, nil
}

// writeOutput creates destPath and never replaces an existing file.
func writeOutput(destPath string, data []byte) error {
	err := fileutil.WriteExclusive(destPath, data, filePermissions)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %s", ErrDestinationExists, destPath)
	default:
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
}
