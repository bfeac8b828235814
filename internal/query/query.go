// Package query evaluates a small JSONPath-like language.
//
// Supported forms, each optionally prefixed with "$":
//
//	.a.b          member access
//	[0] or .0     array index (or member "0" on an object)
//	["a"] ['a']   quoted member access
//	.*            every element or member value; ends evaluation
//	..key         every value stored under key, anywhere; ends evaluation
//
// Filters, slices and unions are not supported. A path that does not
// resolve yields no result rather than an error.
package query

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsonsmith/internal/models"
)

// Eval evaluates path against data. The boolean is false when the path
// does not resolve to anything.
func Eval(data models.Value, path string) (models.Value, bool) {
	if path == "" || path == "$" {
		return data, true
	}

	p := strings.TrimPrefix(path, "$")
	if i := strings.Index(p, ".."); i >= 0 {
		return models.ArrayValue(FindAll(data, descentKey(p[i+2:]))...), true
	}
	p = strings.TrimPrefix(p, ".")

	cur := data
	for _, seg := range Segments(p) {
		if cur.IsNull() {
			return models.Value{}, false
		}

		if seg == "*" {
			switch cur.Kind() {
			case models.Array:
				return cur, true
			case models.Object:
				return models.ArrayValue(cur.Values()...), true
			}
		}

		next, ok := step(cur, seg)
		if !ok {
			return models.Value{}, false
		}
		cur = next
	}
	return cur, true
}

// descentKey is the key named after "..", up to the next separator.
func descentKey(rest string) string {
	if i := strings.IndexAny(rest, ".["); i >= 0 {
		return rest[:i]
	}
	return rest
}

func step(cur models.Value, seg string) (models.Value, bool) {
	if n, err := strconv.Atoi(seg); err == nil {
		switch cur.Kind() {
		case models.Array:
			return cur.Index(n)
		case models.Object:
			return cur.Get(seg)
		}
		return models.Value{}, false
	}

	if cur.Kind() != models.Object {
		return models.Value{}, false
	}
	return cur.Get(unquote(seg))
}

// unquote strips one leading and one trailing quote character, of either
// kind and independently of each other.
func unquote(seg string) string {
	if seg != "" && (seg[0] == '"' || seg[0] == '\'') {
		seg = seg[1:]
	}
	if seg != "" && (seg[len(seg)-1] == '"' || seg[len(seg)-1] == '\'') {
		seg = seg[:len(seg)-1]
	}
	return seg
}

// Segments splits a path, without its "$" prefix, into the keys and
// indexes it names. Dots inside brackets are part of the key. Empty keys
// are dropped except when written as "[]".
func Segments(p string) []string {
	var (
		parts     []string
		cur       strings.Builder
		inBracket bool
	)
	for _, r := range p {
		switch {
		case r == '[':
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
			}
			cur.Reset()
			inBracket = true
		case r == ']':
			parts = append(parts, cur.String())
			cur.Reset()
			inBracket = false
		case r == '.' && !inBracket:
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
			}
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// FindAll returns every value stored under key anywhere in data, in
// pre-order: a match is listed before any matches nested inside it.
func FindAll(data models.Value, key string) []models.Value {
	var out []models.Value
	var search func(v models.Value)
	search = func(v models.Value) {
		switch v.Kind() {
		case models.Array:
			for _, item := range v.Items() {
				search(item)
			}
		case models.Object:
			for _, m := range v.Members() {
				if m.Key == key {
					out = append(out, m.Value)
				}
				search(m.Value)
			}
		}
	}
	search(data)
	return out
}
