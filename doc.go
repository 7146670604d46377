// Package marksnap converts Markdown files to standalone HTML or PDF.
//
// # Quick Start
//
// Build a request from command-line style arguments, then convert it:
//
//	req, err := marksnap.BuildRequest(marksnap.Args{
//	    Positional: []string{"notes.md", "out"},
//	    PDF:        true,
//	}, marksnap.BuildEnv{WorkDir: wd})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := marksnap.NewRenderer(marksnap.RendererOptions{PageSize: marksnap.PageA4})
//	defer r.Close()
//
//	batch := marksnap.NewOrchestrator(r).Convert(ctx, req)
//	if err := batch.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Naming
//
// Without an explicit name, each output is called
// <source stem>_<YYYYMMDD><3 digits>.<ext> and lands in the output directory.
// An existing file is never overwritten: the job fails with
// ErrDestinationExists instead.
//
// # Batches
//
// One job is created per source, in declaration order. Jobs run concurrently
// (see WithWorkers) and a failed job does not stop its siblings unless
// WithFailFast is set. BatchResult reports outcomes in declaration order.
//
// # Backends
//
// Renderer converts Markdown with Goldmark (GFM, footnotes, Chroma
// highlighting). PDF output is printed by headless Chrome through go-rod;
// set ROD_BROWSER_BIN to use an installed browser and ROD_NO_SANDBOX=1 in
// containers. Generated PDFs are checked with pdfcpu before being written.
//
// # Errors
//
// Malformed requests wrap ErrValidation. Job failures are reported per job
// in JobResult.Err and can be classified with errors.Is against the
// sentinels in this package.
package marksnap
