package marksnap

import (
	"path/filepath"
	"strings"
)

// markdownExtensions lists the suffixes recognized as Markdown sources.
var markdownExtensions = []string{".md", ".markdown"}

// PathResolver resolves user-supplied paths against a working directory.
type PathResolver struct {
	WorkDir string
}

// Resolve returns p cleaned when absolute, otherwise joined onto WorkDir.
func (r PathResolver) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.WorkDir, p)
}

// IsMarkdown reports whether p ends with a Markdown extension.
// This is a naming heuristic only; the file is not inspected.
func IsMarkdown(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range markdownExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Stem returns the base name of p without its extension.
func Stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// destinationPath assembles dir/basename.ext for an output type.
func destinationPath(dir, basename string, t OutputType) string {
	return filepath.Join(dir, basename+t.Ext())
}
