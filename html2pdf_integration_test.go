//go:build integration

package marksnap

// Notes:
// - Requires Chrome or Chromium; rod downloads one on first run when none
//   is installed. Set ROD_BROWSER_BIN to use a specific binary.
// - One Renderer is shared by the subtests so only one browser starts.

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const integrationTimeout = 60 * time.Second

func TestIntegration_ToPDF(t *testing.T) {
	r := NewRenderer(RendererOptions{PageSize: PageA4, Browsers: 1})
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	tests := []struct {
		name     string
		markdown string
	}{
		{name: "heading", markdown: "# Report\n\nBody text.\n"},
		{name: "code block", markdown: "# Code\n\n```go\nfunc main() {}\n```\n"},
		{name: "table", markdown: "| a | b |\n|---|---|\n| 1 | 2 |\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
			defer cancel()

			dir := t.TempDir()
			src := filepath.Join(dir, "doc.md")
			dst := filepath.Join(dir, "doc.pdf")
			writeFile(t, src, tt.markdown)

			if err := r.ToPDF(ctx, src, dst); err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}

			data, err := os.ReadFile(dst) // #nosec G304 -- test path
			if err != nil {
				t.Fatal(err)
			}
			if err := validatePDF(data); err != nil {
				t.Errorf("output failed validation: %v", err)
			}
		})
	}
}

func TestIntegration_Orchestrator_PDFBatch(t *testing.T) {
	r := NewRenderer(RendererOptions{Browsers: 2})
	t.Cleanup(func() { _ = r.Close() })

	dir := t.TempDir()
	var sources []string
	for _, name := range []string{"one.md", "two.md", "three.md"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, "# "+name+"\n")
		sources = append(sources, p)
	}

	req, err := NewConversionRequest(sources, filepath.Join(dir, "out"), "", TypePDF)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	batch := NewOrchestrator(r, WithWorkers(2)).Convert(ctx, req)
	if err := batch.Err(); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if batch.Succeeded() != len(sources) {
		t.Errorf("succeeded = %d, want %d", batch.Succeeded(), len(sources))
	}
}
