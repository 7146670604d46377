package pipeline

// Notes:
// - Goldmark output is checked for substrings; exact markup belongs to
//   goldmark and chroma and may change between versions.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown rendering
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "standalone document",
			input:        "# Hello",
			wantContains: []string{"<!DOCTYPE html>", "<title></title>", `<h1 id="hello">Hello</h1>`, "</html>"},
		},
		{
			name:         "GFM table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "footnote",
			input:        "text[^1]\n\n[^1]: note\n",
			wantContains: []string{"footnote"},
		},
		{
			name:         "highlighted code uses inline styles",
			input:        "```go\nfunc main() {}\n```\n",
			wantContains: []string{"<pre", "style="},
			wantExcludes: []string{`class="chroma"`},
		},
		{
			name:         "raw HTML is dropped",
			input:        "<script>alert(1)</script>\n\nok",
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "CRLF line endings",
			input:        "# Title\r\n\r\nbody\r\n",
			wantContains: []string{`<h1 id="title">Title</h1>`, "<p>body</p>"},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.wantExcludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	if got := normalizeLineEndings("a\r\nb\rc\n"); got != "a\nb\nc\n" {
		t.Errorf("normalizeLineEndings() = %q", got)
	}
}
