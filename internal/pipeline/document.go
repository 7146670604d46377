package pipeline

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML document ready for post-processing.
type Document struct {
	doc *goquery.Document
}

// ParseDocument parses a full HTML document.
func ParseDocument(htmlContent string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// SetTitle sets <title> to the text of the first heading, or to fallback
// when the document has no heading.
func (d *Document) SetTitle(fallback string) {
	title := strings.TrimSpace(d.doc.Find("h1, h2, h3, h4, h5, h6").First().Text())
	if title == "" {
		title = fallback
	}

	head := d.doc.Find("head").First()
	if t := head.Find("title"); t.Length() > 0 {
		t.First().SetText(title)
		return
	}
	head.AppendHtml("<title></title>")
	head.Find("title").SetText(title)
}

// Title returns the current document title.
func (d *Document) Title() string {
	return d.doc.Find("title").First().Text()
}

// RewriteRelativePaths turns relative img[src] and a[href] values into
// absolute file:// URLs under sourceDir. Anchors, URLs, absolute paths and
// paths escaping sourceDir are left untouched.
func (d *Document) RewriteRelativePaths(sourceDir string) error {
	if sourceDir == "" {
		return nil
	}
	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("resolving source directory: %w", err)
	}

	rewrite := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			val, ok := s.Attr(attr)
			if !ok || !isRelativePath(val) {
				return
			}
			abs := filepath.Join(absDir, val)
			if !isPathUnderDir(abs, absDir) {
				return
			}
			s.SetAttr(attr, pathToFileURL(abs))
		}
	}

	d.doc.Find("img[src]").Each(rewrite("src"))
	d.doc.Find("a[href]").Each(rewrite("href"))
	return nil
}

// HTML renders the document back to a string.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return out, nil
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || filepath.IsAbs(path) {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
