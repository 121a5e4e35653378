// Package prompt implements the template collaborator of the goalchain
// engine: a thin renderer over text/template plus the default prompt
// bodies the engine ships with.
//
// Templates render against a plain map[string]any and have two extra
// filters available:
//
//   - flag: wraps a token in the sentinel delimiters ("<completed>")
//   - join: strings.Join for rendering field description lists
//
// Every prompt a Goal sends to the model is built here, and every one of
// them can be overridden per goal at construction time, so the engine's
// behavior is specified by the control flow in the chain package, not by
// any particular wording.
package prompt
