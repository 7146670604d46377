package marksnap

// Notes:
// - Sources are real files under t.TempDir so path resolution behaves the
//   same on every platform. Only the first source has to exist.

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"testing"
)

func buildEnv(t *testing.T, files ...string) BuildEnv {
	t.Helper()
	wd := t.TempDir()
	for _, f := range files {
		writeFile(t, filepath.Join(wd, f), "# "+f+"\n")
	}
	return BuildEnv{WorkDir: wd}
}

// ---------------------------------------------------------------------------
// TestBuildRequest_Single - <source> [outputDirectory]
// ---------------------------------------------------------------------------

func TestBuildRequest_Single(t *testing.T) {
	t.Parallel()

	env := buildEnv(t, "notes.md", "docs/guide.md")
	wd := env.WorkDir

	tests := []struct {
		name     string
		args     Args
		wantSrc  string
		wantDir  string
		wantType OutputType
		wantName string
	}{
		{
			name:     "source only",
			args:     Args{Positional: []string{"notes.md"}},
			wantSrc:  filepath.Join(wd, "notes.md"),
			wantDir:  wd,
			wantType: TypeHTML,
		},
		{
			name:     "default directory is the source directory",
			args:     Args{Positional: []string{"docs/guide.md"}},
			wantSrc:  filepath.Join(wd, "docs", "guide.md"),
			wantDir:  filepath.Join(wd, "docs"),
			wantType: TypeHTML,
		},
		{
			name:     "relative output directory",
			args:     Args{Positional: []string{"notes.md", "out"}, PDF: true},
			wantSrc:  filepath.Join(wd, "notes.md"),
			wantDir:  filepath.Join(wd, "out"),
			wantType: TypePDF,
		},
		{
			name:     "absolute output directory and name",
			args:     Args{Positional: []string{filepath.Join(wd, "notes.md"), filepath.Join(wd, "x", "..", "abs")}, Name: "report"},
			wantSrc:  filepath.Join(wd, "notes.md"),
			wantDir:  filepath.Join(wd, "abs"),
			wantType: TypeHTML,
			wantName: "report",
		},
		{
			name:     "configured default type",
			args:     Args{Positional: []string{"notes.md"}, DefaultType: TypePDF},
			wantSrc:  filepath.Join(wd, "notes.md"),
			wantDir:  wd,
			wantType: TypePDF,
		},
		{
			name:     "pdf flag wins over configured html",
			args:     Args{Positional: []string{"notes.md"}, PDF: true, DefaultType: TypeHTML},
			wantSrc:  filepath.Join(wd, "notes.md"),
			wantDir:  wd,
			wantType: TypePDF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := BuildRequest(tt.args, env)
			if err != nil {
				t.Fatalf("BuildRequest() error = %v", err)
			}
			if got := req.Sources(); !slices.Equal(got, []string{tt.wantSrc}) {
				t.Errorf("sources = %v, want [%s]", got, tt.wantSrc)
			}
			if req.OutputDirectory() != tt.wantDir {
				t.Errorf("directory = %q, want %q", req.OutputDirectory(), tt.wantDir)
			}
			if req.OutputType() != tt.wantType {
				t.Errorf("type = %q, want %q", req.OutputType(), tt.wantType)
			}
			if req.OutputName() != tt.wantName {
				t.Errorf("name = %q, want %q", req.OutputName(), tt.wantName)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildRequest_Multi - Markdown tokens are sources
// ---------------------------------------------------------------------------

func TestBuildRequest_Multi(t *testing.T) {
	t.Parallel()

	env := buildEnv(t, "a.md", "b.md", "c.markdown")
	wd := env.WorkDir
	out := filepath.Join(wd, "out")

	tests := []struct {
		name     string
		args     Args
		wantSrcs []string
		wantDir  string
	}{
		{
			name:     "trailing directory",
			args:     Args{Positional: []string{"a.md", "b.md", out}, Multi: MultiFlagSet},
			wantSrcs: []string{filepath.Join(wd, "a.md"), filepath.Join(wd, "b.md")},
			wantDir:  out,
		},
		{
			name:     "all markdown defaults to working directory",
			args:     Args{Positional: []string{"a.md", "b.md", "c.markdown"}, Multi: MultiFlagSet},
			wantSrcs: []string{filepath.Join(wd, "a.md"), filepath.Join(wd, "b.md"), filepath.Join(wd, "c.markdown")},
			wantDir:  wd,
		},
		{
			name:     "non-markdown tokens in the middle are ignored",
			args:     Args{Positional: []string{"a.md", "notes.txt", "b.md", "out"}, Multi: MultiFlagSet},
			wantSrcs: []string{filepath.Join(wd, "a.md"), filepath.Join(wd, "b.md")},
			wantDir:  out,
		},
		{
			name:     "value attached to the flag is a source",
			args:     Args{Positional: []string{"a.md", "out"}, Multi: "b.md"},
			wantSrcs: []string{filepath.Join(wd, "a.md"), filepath.Join(wd, "b.md")},
			wantDir:  out,
		},
		{
			name:     "single source in multi mode",
			args:     Args{Positional: []string{"a.md"}, Multi: MultiFlagSet},
			wantSrcs: []string{filepath.Join(wd, "a.md")},
			wantDir:  wd,
		},
		{
			name:     "leading directory token is not checked",
			args:     Args{Positional: []string{"newdir", "a.md", "b.md"}, Multi: MultiFlagSet},
			wantSrcs: []string{filepath.Join(wd, "a.md"), filepath.Join(wd, "b.md")},
			wantDir:  wd,
		},
		{
			name:     "second source need not exist yet",
			args:     Args{Positional: []string{"a.md", "missing.md"}, Multi: MultiFlagSet},
			wantSrcs: []string{filepath.Join(wd, "a.md"), filepath.Join(wd, "missing.md")},
			wantDir:  wd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := BuildRequest(tt.args, env)
			if err != nil {
				t.Fatalf("BuildRequest() error = %v", err)
			}
			if got := req.Sources(); !slices.Equal(got, tt.wantSrcs) {
				t.Errorf("sources = %v, want %v", got, tt.wantSrcs)
			}
			if req.OutputDirectory() != tt.wantDir {
				t.Errorf("directory = %q, want %q", req.OutputDirectory(), tt.wantDir)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildRequest_Errors - Rejected invocations
// ---------------------------------------------------------------------------

func TestBuildRequest_Errors(t *testing.T) {
	t.Parallel()

	env := buildEnv(t, "a.md", "b.md")

	tests := []struct {
		name    string
		args    Args
		wantErr error
	}{
		{name: "no positional shows help", args: Args{}, wantErr: ErrHelpRequested},
		{name: "three positional without multi", args: Args{Positional: []string{"a.md", "b.md", "out"}}, wantErr: ErrTooManyParams},
		{name: "missing single source", args: Args{Positional: []string{"nope.md"}}, wantErr: ErrSourceNotFound},
		{name: "directory as source", args: Args{Positional: []string{"."}}, wantErr: ErrSourceNotFound},
		{name: "missing first multi source", args: Args{Positional: []string{"nope.md", "a.md"}, Multi: MultiFlagSet}, wantErr: ErrSourceNotFound},
		{name: "missing first source after directory token", args: Args{Positional: []string{"newdir", "nope.md", "a.md"}, Multi: MultiFlagSet}, wantErr: ErrSourceNotFound},
		{name: "multi without markdown", args: Args{Positional: []string{"out"}, Multi: MultiFlagSet}, wantErr: ErrNoSources},
		{name: "name with several sources", args: Args{Positional: []string{"a.md", "b.md"}, Multi: MultiFlagSet, Name: "x"}, wantErr: ErrAmbiguousName},
		{name: "unknown configured type", args: Args{Positional: []string{"a.md"}, DefaultType: "docx"}, wantErr: ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := BuildRequest(tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuildRequest() error = %v, want %v", err, tt.wantErr)
			}
			if req != nil {
				t.Errorf("request = %+v, want nil", req)
			}
		})
	}
}

func TestBuildRequest_HelpIsNotValidation(t *testing.T) {
	t.Parallel()

	_, err := BuildRequest(Args{}, BuildEnv{WorkDir: t.TempDir()})
	if errors.Is(err, ErrValidation) {
		t.Errorf("help request %v must not be a validation error", err)
	}
}

func TestBuildRequest_UsesStat(t *testing.T) {
	t.Parallel()

	var asked []string
	env := BuildEnv{
		WorkDir: t.TempDir(),
		Stat: func(p string) (fs.FileInfo, error) {
			asked = append(asked, p)
			return nil, fs.ErrNotExist
		},
	}

	_, err := BuildRequest(Args{Positional: []string{"a.md", "b.md"}, Multi: MultiFlagSet}, env)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("error = %v, want ErrSourceNotFound", err)
	}
	if len(asked) != 1 || asked[0] != filepath.Join(env.WorkDir, "a.md") {
		t.Errorf("stat calls = %v, want only the first source", asked)
	}
}
