package marksnap

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// OutputType selects the backend and the output file extension.
type OutputType string

// Supported output types.
const (
	TypeHTML OutputType = "html"
	TypePDF  OutputType = "pdf"
)

// ParseOutputType converts a user-supplied value into an OutputType.
// Matching is case-insensitive and an empty value yields TypeHTML.
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeHTML:
		return TypeHTML, nil
	case TypePDF:
		return TypePDF, nil
	default:
		return "", fmt.Errorf("%w: %q (must be html or pdf)", ErrUnknownType, s)
	}
}

// Valid reports whether t is a supported output type.
func (t OutputType) Valid() bool {
	return t == TypeHTML || t == TypePDF
}

// Ext returns the file extension for t, including the leading dot.
func (t OutputType) Ext() string {
	return "." + string(t)
}

// ConversionRequest is the normalized intent of one invocation.
// It is immutable: build it with NewConversionRequest or BuildRequest.
type ConversionRequest struct {
	sources    []string
	outputDir  string
	outputName string
	outputType OutputType
}

// NewConversionRequest validates its arguments and returns a request.
// Sources are copied, so later changes to the caller's slice have no effect.
func NewConversionRequest(sources []string, outputDir, outputName string, outputType OutputType) (*ConversionRequest, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if outputName != "" && len(sources) > 1 {
		return nil, fmt.Errorf("%w (%d sources)", ErrAmbiguousName, len(sources))
	}
	if !outputType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, outputType)
	}
	if !filepath.IsAbs(outputDir) {
		return nil, fmt.Errorf("%w: %q", ErrRelativeDir, outputDir)
	}

	return &ConversionRequest{
		sources:    slices.Clone(sources),
		outputDir:  filepath.Clean(outputDir),
		outputName: outputName,
		outputType: outputType,
	}, nil
}

// Sources returns a copy of the ordered source paths.
func (r *ConversionRequest) Sources() []string { return slices.Clone(r.sources) }

// OutputDirectory returns the absolute directory receiving every output file.
func (r *ConversionRequest) OutputDirectory() string { return r.outputDir }

// OutputName returns the explicit basename, or "" when names are generated.
func (r *ConversionRequest) OutputName() string { return r.outputName }

// OutputType returns the requested output type.
func (r *ConversionRequest) OutputType() OutputType { return r.outputType }

// JobState tracks a job through the conversion pass.
type JobState string

// Job states, in the order a successful job visits them.
const (
	StatePending          JobState = "pending"
	StateDirectoryEnsured JobState = "directory-ensured"
	StateDispatched       JobState = "dispatched"
	StateCompleted        JobState = "completed"
	StateFailed           JobState = "failed"
	StateSkipped          JobState = "skipped"
)

// ConversionJob is one source-to-destination conversion unit.
type ConversionJob struct {
	ID              string
	SourcePath      string
	DestinationPath string
	OutputType      OutputType
}

// JobResult holds the outcome of a single job.
type JobResult struct {
	Job      ConversionJob
	State    JobState
	Err      error
	Duration time.Duration
}

// BatchResult lists job outcomes in the order sources were declared.
type BatchResult struct {
	Jobs []JobResult
}

// Succeeded returns the number of completed jobs.
func (b BatchResult) Succeeded() int {
	n := 0
	for _, j := range b.Jobs {
		if j.State == StateCompleted {
			n++
		}
	}
	return n
}

// Failed returns the number of jobs that did not complete.
func (b BatchResult) Failed() int {
	return len(b.Jobs) - b.Succeeded()
}

// Err joins the errors of every failed job, or returns nil.
func (b BatchResult) Err() error {
	var errs []error
	for _, j := range b.Jobs {
		if j.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", j.Job.SourcePath, j.Err))
		}
	}
	return errors.Join(errs...)
}
