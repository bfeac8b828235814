// Package csvcodec converts between JSON arrays of objects and CSV text.
//
// Only the single-line subset of RFC 4180 is handled: fields may be
// quoted and quotes inside them are doubled, but a quoted field cannot
// span lines.
package csvcodec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/models"
)

// Option configures ToCSV.
type Option func(*options)

type options struct {
	headerName func(string) string
	skip       func(string) bool
}

// WithHeaderName renames columns on output. Rows are still looked up by
// the original key.
func WithHeaderName(fn func(key string) string) Option {
	return func(o *options) { o.headerName = fn }
}

// WithSkip leaves out the columns for which skip returns true.
func WithSkip(skip func(key string) bool) Option {
	return func(o *options) { o.skip = skip }
}

// Headers returns the union of the keys of every object element of data,
// in the order they are first seen.
func Headers(data models.Value) []string {
	var headers []string
	seen := make(map[string]bool)
	for _, item := range data.Items() {
		for _, k := range item.Keys() {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	return headers
}

// ToCSV encodes data, which must be an array, as CSV. The first line holds
// the quoted headers. Strings and nested values are quoted, other scalars
// are written bare, and null or missing members leave the field empty.
// Elements that are not objects produce a row of empty fields.
func ToCSV(data models.Value, opts ...Option) (string, error) {
	if data.Kind() != models.Array {
		return "", errors.NewConversionError("cannot convert "+data.Kind().String()+" to CSV", errors.ErrInvalidInput)
	}
	if data.Len() == 0 {
		return "", nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	headers := Headers(data)
	if o.skip != nil {
		kept := headers[:0]
		for _, h := range headers {
			if !o.skip(h) {
				kept = append(kept, h)
			}
		}
		headers = kept
	}
	rows := make([]string, 0, data.Len()+1)

	fields := make([]string, len(headers))
	for i, h := range headers {
		if o.headerName != nil {
			h = o.headerName(h)
		}
		fields[i] = quote(h)
	}
	rows = append(rows, strings.Join(fields, ","))

	for _, item := range data.Items() {
		for i, h := range headers {
			v, _ := item.Get(h)
			fields[i] = cell(v)
		}
		rows = append(rows, strings.Join(fields, ","))
	}
	return strings.Join(rows, "\n"), nil
}

func cell(v models.Value) string {
	switch v.Kind() {
	case models.Null:
		return ""
	case models.Array, models.Object:
		return quote(v.JSON())
	case models.String:
		return quote(v.Str())
	}
	return v.Text()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FromCSV decodes CSV text into an array of objects keyed by the header
// line. Text with fewer than two lines decodes to an empty array. Missing
// trailing fields become empty strings, and each field is converted with
// Coerce.
func FromCSV(text string) models.Value {
	out := models.ArrayValue()

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return out
	}

	headers := ParseLine(strings.TrimSuffix(lines[0], "\r"))
	for _, line := range lines[1:] {
		fields := ParseLine(strings.TrimSuffix(line, "\r"))
		row := models.ObjectValue()
		for i, h := range headers {
			var f string
			if i < len(fields) {
				f = fields[i]
			}
			row.Set(h, Coerce(f))
		}
		out.Append(row)
	}
	return out
}

var numberRE = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Coerce converts a CSV field to a JSON value: the literals true, false and
// null map to themselves, a field that is a complete decimal number once
// surrounding whitespace is removed becomes a number, and anything else,
// including the empty field, stays a string.
func Coerce(field string) models.Value {
	switch field {
	case "true":
		return models.BoolValue(true)
	case "false":
		return models.BoolValue(false)
	case "null":
		return models.NullValue()
	}
	if t := strings.TrimSpace(field); numberRE.MatchString(t) {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return models.NumberValue(f)
		}
	}
	return models.StringValue(field)
}

// ParseLine splits one line of CSV into fields. A double quote toggles
// quoting, except that two quotes inside a quoted field stand for one
// literal quote. Commas only separate fields outside quotes. A line
// always has at least one field.
func ParseLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
