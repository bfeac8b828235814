package formatter

import (
	"strings"

	"github.com/mcncl/jsonsmith/internal/models"
	"github.com/mcncl/jsonsmith/internal/parser"
)

// Formatter is responsible for re-printing JSON text
type Formatter struct {
	indent string
	jwcc   bool
}

// NewFormatter creates a new Formatter instance that indents with two spaces
func NewFormatter() *Formatter {
	return &Formatter{indent: "  "}
}

// WithIndent sets the indent unit for one nesting level
func (f *Formatter) WithIndent(indent string) *Formatter {
	f.indent = indent
	return f
}

// WithJWCC makes the formatter accept comments and trailing commas. They
// are dropped from the output.
func (f *Formatter) WithJWCC(enabled bool) *Formatter {
	f.jwcc = enabled
	return f
}

func (f *Formatter) parse(src string) (models.Value, error) {
	if f.jwcc {
		return parser.ParseJWCC(src)
	}
	return parser.ParseString(src)
}

// Format takes JSON text and returns it indented, one member or element
// per line. Member order is kept.
func (f *Formatter) Format(src string) (string, error) {
	v, err := f.parse(src)
	if err != nil {
		return "", err
	}
	return v.Indent(f.indent), nil
}

// Minify takes JSON text and returns it with all insignificant whitespace
// removed
func (f *Formatter) Minify(src string) (string, error) {
	v, err := f.parse(src)
	if err != nil {
		return "", err
	}
	return v.JSON(), nil
}

// Standardize converts JWCC text to standard JSON. Unlike Format with
// JWCC enabled, the original layout is kept: comments become whitespace
// and trailing commas are removed.
func (f *Formatter) Standardize(src string) (string, error) {
	out, err := parser.Standardize(src)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
