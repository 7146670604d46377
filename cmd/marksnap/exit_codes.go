package main

import (
	"errors"
	"os"

	"github.com/alnah/marksnap"
	"github.com/alnah/marksnap/internal/config"
	"github.com/alnah/marksnap/internal/logging"
)

// Exit codes for the marksnap CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion or help
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or request
	ExitIO      = 3 // Missing source, existing destination, unwritable output
	ExitBrowser = 4 // Browser or conversion backend errors
)

// exitCodeFor returns the exit code for an error.
// For joined batch errors the most specific category wins, in the order
// browser, I/O, usage, backend.
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, marksnap.ErrHelpRequested) {
		return ExitSuccess
	}

	if errors.Is(err, marksnap.ErrBrowserConnect) ||
		errors.Is(err, marksnap.ErrPageCreate) ||
		errors.Is(err, marksnap.ErrPageLoad) ||
		errors.Is(err, marksnap.ErrPDFGeneration) ||
		errors.Is(err, marksnap.ErrInvalidPDF) {
		return ExitBrowser
	}

	if errors.Is(err, marksnap.ErrSourceNotFound) ||
		errors.Is(err, marksnap.ErrDestinationExists) ||
		errors.Is(err, marksnap.ErrDirectoryCreation) ||
		errors.Is(err, marksnap.ErrReadMarkdown) ||
		errors.Is(err, marksnap.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, marksnap.ErrValidation) ||
		errors.Is(err, marksnap.ErrInvalidPage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	if errors.Is(err, marksnap.ErrBackend) {
		return ExitBrowser
	}
	return ExitGeneral
}
