// Package hints turns common marksnap failures into one-line suggestions.
// Every hint is formatted as "\n  hint: <text>" so it can be appended to an
// error line.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/marksnap/internal/fileutil"
)

// IsInContainer reports whether marksnap runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the environment variables that usually fix a
// headless Chrome launch failure.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForTimeout suggests a longer PDF timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForDestinationExists explains how to avoid the collision.
func ForDestinationExists() string {
	return format("marksnap never overwrites; remove the file or pass a different --name")
}

// ForSourceNotFound reminds that sources resolve against the working directory.
func ForSourceNotFound() string {
	return format("relative paths are resolved against the current directory")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForConfigNotFound suggests --config or the user-level location among
// searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "marksnap") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
