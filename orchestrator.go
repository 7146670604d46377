package marksnap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// dirPermissions is used for output directories: rwxr-x---.
const dirPermissions = 0o750

// Backends converts one Markdown file into one output file.
// Implementations must not overwrite an existing destination.
type Backends interface {
	ToHTML(ctx context.Context, sourcePath, destPath string) error
	ToPDF(ctx context.Context, sourcePath, destPath string) error
}

// Orchestrator turns a ConversionRequest into conversion jobs and runs them.
type Orchestrator struct {
	backends Backends
	names    *NameGenerator
	logger   zerolog.Logger
	workers  int
	failFast bool
	newID    func() string
	stat     func(string) (fs.FileInfo, error)
	mkdirAll func(string, fs.FileMode) error
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithWorkers bounds how many jobs run at the same time (0 = auto).
func WithWorkers(n int) OrchestratorOption {
	return func(o *Orchestrator) { o.workers = ResolvePoolSize(n) }
}

// WithFailFast skips jobs that have not started once any job has failed.
func WithFailFast(on bool) OrchestratorOption {
	return func(o *Orchestrator) { o.failFast = on }
}

// WithLogger sets the logger used for per-job reporting.
func WithLogger(l zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

// WithNameGenerator replaces the generator used when no name is given.
func WithNameGenerator(g *NameGenerator) OrchestratorOption {
	return func(o *Orchestrator) { o.names = g }
}

// NewOrchestrator creates an Orchestrator dispatching to backends.
func NewOrchestrator(backends Backends, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		backends: backends,
		names:    NewNameGenerator(),
		logger:   zerolog.Nop(),
		workers:  ResolvePoolSize(0),
		newID:    uuid.NewString,
		stat:     os.Stat,
		mkdirAll: os.MkdirAll,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Convert runs one job per source and returns their outcomes in declaration
// order. Jobs are dispatched in order but may complete in any order. A failed
// job never aborts its siblings unless fail-fast is enabled.
func (o *Orchestrator) Convert(ctx context.Context, req *ConversionRequest) BatchResult {
	results := o.plan(req)

	var stop atomic.Bool
	var g errgroup.Group
	g.SetLimit(o.workers)

	for i := range results {
		r := &results[i]
		if r.State == StateFailed {
			o.report(r)
			if o.failFast {
				stop.Store(true)
			}
			continue
		}
		if skip := o.skipReason(ctx, &stop); skip != nil {
			o.skip(r, skip)
			continue
		}

		g.Go(func() error {
			if skip := o.skipReason(ctx, &stop); skip != nil {
				o.skip(r, skip)
				return nil
			}
			o.run(ctx, r)
			if r.State == StateFailed && o.failFast {
				stop.Store(true)
			}
			return nil
		})
	}

	_ = g.Wait() // tasks report through their JobResult, never through the group
	return BatchResult{Jobs: results}
}

// plan builds a job per source and performs the checks that must happen
// before any work starts. It runs on the caller's goroutine, in order.
func (o *Orchestrator) plan(req *ConversionRequest) []JobResult {
	sources := req.Sources()
	results := make([]JobResult, len(sources))
	claimed := make(map[string]bool, len(sources))

	for i, src := range sources {
		basename := req.OutputName()
		if basename == "" {
			basename = o.names.Generate(Stem(src))
		}
		job := ConversionJob{
			ID:              o.newID(),
			SourcePath:      src,
			DestinationPath: destinationPath(req.OutputDirectory(), basename, req.OutputType()),
			OutputType:      req.OutputType(),
		}
		results[i] = JobResult{Job: job, State: StatePending}

		if err := o.check(job, claimed); err != nil {
			results[i].State = StateFailed
			results[i].Err = err
			continue
		}
		claimed[job.DestinationPath] = true
	}
	return results
}

// check rejects a job whose destination is taken or whose source is missing.
func (o *Orchestrator) check(job ConversionJob, claimed map[string]bool) error {
	if !job.OutputType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, job.OutputType)
	}
	if claimed[job.DestinationPath] {
		return fmt.Errorf("%w: %s (claimed by an earlier source)", ErrDestinationExists, job.DestinationPath)
	}
	if _, err := o.stat(job.DestinationPath); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, job.DestinationPath)
	}
	if err := checkSource(job.SourcePath, o.stat); err != nil {
		return err
	}
	return nil
}

// run moves one job through DirectoryEnsured and Dispatched to a final state.
func (o *Orchestrator) run(ctx context.Context, r *JobResult) {
	start := time.Now()
	defer func() {
		r.Duration = time.Since(start)
		o.report(r)
	}()

	dir := filepath.Dir(r.Job.DestinationPath)
	if err := o.mkdirAll(dir, dirPermissions); err != nil {
		r.State, r.Err = StateFailed, fmt.Errorf("%w: %s: %w", ErrDirectoryCreation, dir, err)
		return
	}
	r.State = StateDirectoryEnsured
	o.logger.Debug().Str("job", r.Job.ID).Str("dir", dir).Msg("output directory ready")

	r.State = StateDispatched
	if err := o.dispatch(ctx, r.Job); err != nil {
		r.State, r.Err = StateFailed, err
		return
	}
	r.State = StateCompleted
}

// dispatch calls the backend matching the job's output type.
func (o *Orchestrator) dispatch(ctx context.Context, job ConversionJob) error {
	var err error
	switch job.OutputType {
	case TypeHTML:
		err = o.backends.ToHTML(ctx, job.SourcePath, job.DestinationPath)
	case TypePDF:
		err = o.backends.ToPDF(ctx, job.SourcePath, job.DestinationPath)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, job.OutputType)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrBackend, err)
}

// skipReason returns why a job should not start, or nil.
func (o *Orchestrator) skipReason(ctx context.Context, stop *atomic.Bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if stop.Load() {
		return ErrJobSkipped
	}
	return nil
}

func (o *Orchestrator) skip(r *JobResult, reason error) {
	r.State, r.Err = StateSkipped, reason
	o.report(r)
}

// report is the single place job outcomes are logged.
func (o *Orchestrator) report(r *JobResult) {
	switch r.State {
	case StateCompleted:
		o.logger.Info().
			Str("job", r.Job.ID).
			Str("source", r.Job.SourcePath).
			Str("destination", r.Job.DestinationPath).
			Str("type", string(r.Job.OutputType)).
			Dur("duration", r.Duration).
			Msg("converted")
	case StateSkipped:
		o.logger.Warn().
			Str("job", r.Job.ID).
			Str("source", r.Job.SourcePath).
			Err(r.Err).
			Msg("conversion skipped")
	default:
		o.logger.Error().
			Str("job", r.Job.ID).
			Str("source", r.Job.SourcePath).
			Str("destination", r.Job.DestinationPath).
			Err(r.Err).
			Msg("conversion failed")
	}
}
