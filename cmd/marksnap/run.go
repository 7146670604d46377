package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/marksnap"
	"github.com/alnah/marksnap/internal/config"
	"github.com/alnah/marksnap/internal/fileutil"
	"github.com/alnah/marksnap/internal/hints"
	"github.com/alnah/marksnap/internal/logging"
)

// runMain parses args, runs the conversion and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch {
	case flags.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(env.Stdout, "marksnap %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	batch, err := run(ctx, flags, positional, env)
	if errors.Is(err, marksnap.ErrHelpRequested) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}

	printResults(batch, flags, env)
	return exitCodeFor(batch.Err())
}

// settings is the merged result of config file and flags.
type settings struct {
	cfg      *config.Config
	workers  int
	failFast bool
	timeout  time.Duration
	pageSize marksnap.PageSize
	logger   zerolog.Logger
}

// run builds the request and converts every source.
// A non-nil error means nothing was converted.
func run(ctx context.Context, flags *cliFlags, positional []string, env *Environment) (marksnap.BatchResult, error) {
	s, err := loadSettings(flags, env)
	if err != nil {
		return marksnap.BatchResult{}, err
	}

	wd, err := env.Getwd()
	if err != nil {
		return marksnap.BatchResult{}, fmt.Errorf("resolving working directory: %w", err)
	}

	req, err := marksnap.BuildRequest(marksnap.Args{
		Positional:  positional,
		Name:        flags.name,
		PDF:         flags.pdf,
		Multi:       flags.multi,
		DefaultType: marksnap.OutputType(s.cfg.Output.Type),
	}, marksnap.BuildEnv{WorkDir: wd})
	if err != nil {
		return marksnap.BatchResult{}, err
	}

	s.logger.Debug().
		Strs("sources", req.Sources()).
		Str("dir", req.OutputDirectory()).
		Str("type", string(req.OutputType())).
		Int("workers", s.workers).
		Msg("request built")

	conv := env.NewConverter(marksnap.RendererOptions{
		PageSize: s.pageSize,
		Timeout:  s.timeout,
		Browsers: s.workers,
	})
	defer func() {
		if err := conv.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("closing browsers")
		}
	}()

	orch := marksnap.NewOrchestrator(conv,
		marksnap.WithWorkers(s.workers),
		marksnap.WithFailFast(s.failFast),
		marksnap.WithLogger(s.logger),
		marksnap.WithNameGenerator(&marksnap.NameGenerator{Now: env.Now, Rand: env.Rand}),
	)
	return orch.Convert(ctx, req), nil
}

// loadSettings loads the config file, if any, and applies flags over it.
func loadSettings(flags *cliFlags, env *Environment) (*settings, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		var err error
		if cfg, err = config.LoadConfig(flags.config); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	s := &settings{
		cfg:      cfg,
		workers:  cfg.Batch.Workers,
		failFast: cfg.Batch.FailFast,
		timeout:  cfg.PDF.TimeoutDuration(),
	}
	if flags.workers > 0 {
		s.workers = flags.workers
	}
	if flags.failFastSet {
		s.failFast = flags.failFast
	}
	if d, err := parseTimeout(flags.timeout); err != nil {
		return nil, err
	} else if d > 0 {
		s.timeout = d
	}

	page := cfg.PDF.PageSize
	if flags.pageSize != "" {
		page = flags.pageSize
	}
	pageSize, err := marksnap.ParsePageSize(page)
	if err != nil {
		return nil, err
	}
	s.pageSize = pageSize

	logger, err := newLogger(flags, cfg, env)
	if err != nil {
		return nil, err
	}
	s.logger = logger
	return s, nil
}

// newLogger builds the diagnostic logger. Logs are off unless --verbose or
// log.level asks for them, so regular runs print only result lines.
func newLogger(flags *cliFlags, cfg *config.Config, env *Environment) (zerolog.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "off"
	}
	if flags.verbose {
		level = "debug"
	}
	format := cfg.Log.Format
	if flags.logFormat != "" {
		format = flags.logFormat
	}
	return logging.New(logging.Options{Level: level, Format: format, Output: env.Stderr})
}

// printResults writes one line per job and a summary for batches.
func printResults(batch marksnap.BatchResult, flags *cliFlags, env *Environment) {
	for _, r := range batch.Jobs {
		switch r.State {
		case marksnap.StateCompleted:
			if flags.quiet {
				continue
			}
			if flags.verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Job.SourcePath, r.Job.DestinationPath, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", r.Job.DestinationPath)
			}
		case marksnap.StateSkipped:
			fmt.Fprintf(env.Stderr, "SKIPPED %s: %v\n", r.Job.SourcePath, r.Err)
		default:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Job.SourcePath, r.Err, hintFor(r.Err, flags))
		}
	}

	if !flags.quiet && len(batch.Jobs) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", batch.Succeeded(), batch.Failed())
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, flags *cliFlags) string {
	switch {
	case errors.Is(err, marksnap.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, marksnap.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, marksnap.ErrDestinationExists):
		return hints.ForDestinationExists()
	case errors.Is(err, marksnap.ErrSourceNotFound):
		return hints.ForSourceNotFound()
	case errors.Is(err, marksnap.ErrDirectoryCreation):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		if fileutil.IsFilePath(flags.config) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(flags.config))
	default:
		return ""
	}
}
