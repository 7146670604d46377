package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/marksnap"
	"github.com/alnah/marksnap/internal/config"
)

// Sentinel errors for flag values.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	name      string
	pdf       bool
	multi     string
	config    string
	workers   int
	timeout   string
	pageSize  string
	failFast  bool
	quiet     bool
	verbose   bool
	logFormat string
	version   bool
	help      bool

	failFastSet bool // --fail-fast given explicitly, overrides config
}

// parseFlags parses args (without the program name) and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("marksnap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	fs.StringVar(&f.name, "name", "", "output basename (single source only)")
	fs.BoolVar(&f.pdf, "pdf", false, "produce PDF instead of HTML")
	fs.StringVarP(&f.multi, "multi", "m", "", "convert several sources")
	fs.Lookup("multi").NoOptDefVal = marksnap.MultiFlagSet

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel jobs (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF timeout per file (e.g. 30s, 2m)")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.BoolVar(&f.failFast, "fail-fast", false, "skip remaining files after the first failure")

	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.failFastSet = fs.Changed("fail-fast")

	if err := validateWorkers(f.workers); err != nil {
		return nil, nil, err
	}
	if _, err := parseTimeout(f.timeout); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// validateWorkers checks the --workers range.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// parseTimeout parses --timeout. Empty means unset.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be a positive duration like 30s)", ErrInvalidTimeout, s)
	}
	return d, nil
}
