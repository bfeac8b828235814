package validator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Position locates a parse error in source text. Line and Column are
// 1-based and zero when unknown. CharIndex is a byte offset into the
// source, or -1 when the error message carried no offset.
type Position struct {
	Line      int `json:"line,omitempty"`
	Column    int `json:"column,omitempty"`
	CharIndex int `json:"charIndex"`
}

// Known reports whether p carries any location at all.
func (p Position) Known() bool { return p.Line > 0 || p.CharIndex >= 0 }

var (
	lineColRE  = regexp.MustCompile(`(?i)line\s+(\d+),?\s+column\s+(\d+)`)
	positionRE = regexp.MustCompile(`(?i)position\s+(\d+)`)
)

// Locate extracts the error location from a parser error message. Two
// message shapes are understood: "line L column C", taken as is, and
// "position N", from which line and column are derived by counting
// newlines in source[:N]. Any other message yields an empty Position.
func Locate(errorMessage, source string) Position {
	pos := Position{CharIndex: -1}

	if m := lineColRE.FindStringSubmatch(errorMessage); m != nil {
		pos.Line, _ = strconv.Atoi(m[1])
		pos.Column, _ = strconv.Atoi(m[2])
		return pos
	}

	if m := positionRE.FindStringSubmatch(errorMessage); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return pos
		}
		pos.CharIndex = n
		head := source[:min(n, len(source))]
		pos.Line = strings.Count(head, "\n") + 1
		pos.Column = utf8.RuneCountInString(head[strings.LastIndexByte(head, '\n')+1:]) + 1
	}
	return pos
}
