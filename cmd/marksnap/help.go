package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marksnap [flags] <source.md> [outputDirectory]")
	fmt.Fprintln(w, "       marksnap --multi [flags] <a.md> <b.md> ... [outputDirectory]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to HTML (default) or PDF.")
	fmt.Fprintln(w, "Existing files are never overwritten. Without --name, outputs are named")
	fmt.Fprintln(w, "<source>_<YYYYMMDD><3 digits>.<ext>.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --name <s>            Output basename (single source only)")
	fmt.Fprintln(w, "      --pdf                 Produce PDF instead of HTML")
	fmt.Fprintln(w, "  -m, --multi[=<file>]      Convert several sources into one directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel jobs (0 = auto)")
	fmt.Fprintln(w, "      --fail-fast           Skip remaining files after the first failure")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "  -t, --timeout <d>         Timeout per file (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary to use for PDF output")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (Docker/CI)")
}
