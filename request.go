package marksnap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MultiFlagSet is the value a bare --multi/-m flag carries.
// Any other non-empty value is an extra source or directory token.
const MultiFlagSet = "true"

// maxSinglePositional is the positional limit without multi mode:
// <source> [outputDirectory].
const maxSinglePositional = 2

// Args is the parsed invocation intent, independent of the flag library.
type Args struct {
	Positional  []string
	Name        string     // --name
	PDF         bool       // --pdf
	Multi       string     // --multi / -m; "" when absent
	DefaultType OutputType // type used when PDF is false ("" = html)
}

// BuildEnv supplies the working directory and the stat function used for
// existence checks.
type BuildEnv struct {
	WorkDir string
	Stat    func(string) (fs.FileInfo, error)
}

// BuildRequest maps raw invocation arguments to a validated ConversionRequest.
// It returns ErrHelpRequested when no positional argument is given.
func BuildRequest(args Args, env BuildEnv) (*ConversionRequest, error) {
	if len(args.Positional) == 0 {
		return nil, ErrHelpRequested
	}

	multi := args.Multi != ""
	if len(args.Positional) > maxSinglePositional && !multi {
		return nil, fmt.Errorf("%w: got %d, expected <source> [outputDirectory]; use --multi for several sources",
			ErrTooManyParams, len(args.Positional))
	}

	if env.Stat == nil {
		env.Stat = os.Stat
	}
	resolver := PathResolver{WorkDir: env.WorkDir}

	var sources []string
	var outputDir string
	if multi {
		sources, outputDir = multiSources(args, resolver)
		if len(sources) == 0 {
			return nil, ErrNoSources
		}
	} else {
		first := resolver.Resolve(args.Positional[0])
		sources = []string{first}
		if len(args.Positional) == maxSinglePositional {
			outputDir = resolver.Resolve(args.Positional[1])
		} else {
			outputDir = filepath.Dir(first)
		}
	}

	// Only the first source is checked here, which in multi mode is the first
	// Markdown token rather than the first positional. The others are
	// checked per job so one missing file does not abort the batch.
	if err := checkSource(sources[0], env.Stat); err != nil {
		return nil, err
	}

	outputType, err := resolveOutputType(args)
	if err != nil {
		return nil, err
	}

	return NewConversionRequest(sources, outputDir, args.Name, outputType)
}

// multiSources collects every Markdown-looking token as a source.
// A trailing non-Markdown positional is the shared output directory.
func multiSources(args Args, resolver PathResolver) (sources []string, outputDir string) {
	tokens := args.Positional
	if args.Multi != MultiFlagSet {
		tokens = append(tokens[:len(tokens):len(tokens)], args.Multi)
	}

	for _, tok := range tokens {
		if IsMarkdown(tok) {
			sources = append(sources, resolver.Resolve(tok))
		}
	}

	last := args.Positional[len(args.Positional)-1]
	if IsMarkdown(last) {
		return sources, resolver.WorkDir
	}
	return sources, resolver.Resolve(last)
}

// resolveOutputType applies --pdf over the configured default.
func resolveOutputType(args Args) (OutputType, error) {
	if args.PDF {
		return TypePDF, nil
	}
	return ParseOutputType(string(args.DefaultType))
}

// checkSource verifies that path is an existing regular file.
func checkSource(path string, stat func(string) (fs.FileInfo, error)) error {
	info, err := stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return nil
}
