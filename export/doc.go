// Package export renders conversation transcripts for display outside
// the engine: a Markdown document for logs and docs, and a sanitized
// HTML fragment for embedding in web UIs.
package export
