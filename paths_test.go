package marksnap

import (
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPathResolver_Resolve - Relative and absolute paths
// ---------------------------------------------------------------------------

func TestPathResolver_Resolve(t *testing.T) {
	t.Parallel()

	wd := filepath.FromSlash("/home/u")
	r := PathResolver{WorkDir: wd}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare file", in: "notes.md", want: filepath.Join(wd, "notes.md")},
		{name: "dot slash", in: "./docs/a.md", want: filepath.Join(wd, "docs", "a.md")},
		{name: "parent", in: "../shared/b.md", want: filepath.FromSlash("/home/shared/b.md")},
		{name: "absolute kept", in: filepath.Join(wd, "x", "..", "out"), want: filepath.Join(wd, "out")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsMarkdown - Extension heuristic
// ---------------------------------------------------------------------------

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "a.md", want: true},
		{in: "A.MD", want: true},
		{in: "dir/b.markdown", want: true},
		{in: "out", want: false},
		{in: "notes.md.bak", want: false},
		{in: "readme.mdx", want: false},
		{in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := IsMarkdown(tt.in); got != tt.want {
				t.Errorf("IsMarkdown(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStem - Base name without extension
// ---------------------------------------------------------------------------

func TestStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "/docs/notes.md", want: "notes"},
		{in: "release.v2.markdown", want: "release.v2"},
		{in: "README", want: "README"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := Stem(tt.in); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDestinationPath(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/out")
	if got := destinationPath(dir, "doc", TypeHTML); got != filepath.Join(dir, "doc.html") {
		t.Errorf("html destination = %q", got)
	}
	if got := destinationPath(dir, "doc", TypePDF); got != filepath.Join(dir, "doc.pdf") {
		t.Errorf("pdf destination = %q", got)
	}
}
