package marksnap

import (
	"errors"
	"fmt"
)

// ErrHelpRequested signals that no source was given and usage should be shown.
// It is not a failure: callers print help and exit successfully.
var ErrHelpRequested = errors.New("help requested")

// ErrValidation is the parent of every malformed-input error.
var ErrValidation = errors.New("invalid request")

// Request validation errors. All of them satisfy errors.Is(err, ErrValidation).
var (
	ErrTooManyParams = fmt.Errorf("%w: too many parameters", ErrValidation)
	ErrNoSources     = fmt.Errorf("%w: no markdown source given", ErrValidation)
	ErrAmbiguousName = fmt.Errorf("%w: --name cannot be used with more than one source", ErrValidation)
	ErrUnknownType   = fmt.Errorf("%w: unknown output type", ErrValidation)
	ErrRelativeDir   = fmt.Errorf("%w: output directory must be absolute", ErrValidation)
)

// Job errors.
var (
	ErrSourceNotFound     = errors.New("file not found")
	ErrDestinationExists  = errors.New("destination already exists")
	ErrDirectoryCreation  = errors.New("failed to create output directory")
	ErrBackend            = errors.New("conversion backend failed")
	ErrJobSkipped         = errors.New("skipped after an earlier failure")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrRendererPoolClosed = errors.New("renderer pool is closed")
)

// Browser errors.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidPDF     = errors.New("generated PDF is invalid")
	ErrInvalidPage    = errors.New("invalid page size")
)
