package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Flag wraps a token in the sentinel delimiters the engine scans model
// output for, e.g. Flag("completed") == "<completed>".
func Flag(token string) string {
	return "<" + token + ">"
}

// funcMap holds the filters available inside every template.
var funcMap = template.FuncMap{
	"flag": Flag,
	"join": strings.Join,
}

// Template is a parsed prompt template. It renders against a plain data
// mapping, supports conditionals and iteration, and exposes the "flag"
// filter for emitting machine-detectable sentinel tokens inside otherwise
// natural-language text.
type Template struct {
	name string
	tpl  *template.Template
}

// New parses template text into a Template.
func New(name, text string) (*Template, error) {
	tpl, err := template.New(name).Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %q: %w", name, err)
	}
	return &Template{name: name, tpl: tpl}, nil
}

// MustNew is like New but panics on parse errors. Intended for the
// package-level default templates and for graph-definition time, where a
// broken template is a programming error.
func MustNew(name, text string) *Template {
	t, err := New(name, text)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template's name.
func (t *Template) Name() string {
	return t.name
}

// Render executes the template against the given data mapping.
func (t *Template) Render(data map[string]any) (string, error) {
	var sb strings.Builder
	if err := t.tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt template %q: %w", t.name, err)
	}
	return sb.String(), nil
}
