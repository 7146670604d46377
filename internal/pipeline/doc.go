// Package pipeline turns Markdown into standalone HTML documents.
//
// It covers the stages shared by both output types:
//   - Markdown to HTML conversion via Goldmark (GFM, footnotes, Chroma highlighting)
//   - Document post-processing via goquery (title, relative path rewriting)
//
// Writing files and printing to PDF are handled by the root marksnap package.
package pipeline
