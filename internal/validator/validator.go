// Package validator diagnoses JSON text: it runs a host parser, locates
// the reported error in the source and proposes repair hints.
package validator

import (
	"strings"

	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/parser"
)

// Result is the verdict of a validation. When IsValid is true the other
// fields are empty; otherwise Error is always set.
type Result struct {
	IsValid     bool         `json:"isValid"`
	Error       string       `json:"error,omitempty"`
	Position    *Position    `json:"errorPosition,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// HostParser decides whether text is valid. Its error message is what the
// locator and suggestion table work from.
type HostParser interface {
	Check(src string) error
}

// HostParserFunc adapts a function to the HostParser interface.
type HostParserFunc func(src string) error

// Check calls f(src).
func (f HostParserFunc) Check(src string) error { return f(src) }

var (
	// StrictJSON accepts RFC 8259 JSON and reports errors by offset.
	StrictJSON HostParser = HostParserFunc(parser.Check)

	// JWCC accepts JSON with comments and trailing commas and reports
	// errors by line and column.
	JWCC HostParser = HostParserFunc(parser.CheckJWCC)
)

// Validator validates text with a particular host parser.
type Validator struct {
	host HostParser
}

// NewValidator creates a Validator for strict JSON.
func NewValidator() *Validator {
	return &Validator{host: StrictJSON}
}

// NewValidatorWithParser creates a Validator that uses host to decide validity.
func NewValidatorWithParser(host HostParser) *Validator {
	if host == nil {
		host = StrictJSON
	}
	return &Validator{host: host}
}

// Validate checks source and, if it is invalid, locates the error and
// generates suggestions. Blank input is reported as "empty input" without
// consulting the parser.
func (v *Validator) Validate(source string) Result {
	if strings.TrimSpace(source) == "" {
		return Result{Error: errors.ErrEmptyInput.Error(), Suggestions: []Suggestion{}}
	}

	err := v.host.Check(source)
	if err == nil {
		return Result{IsValid: true, Suggestions: []Suggestion{}}
	}

	msg := err.Error()
	pos := Locate(msg, source)
	return Result{
		Error:       msg,
		Position:    &pos,
		Suggestions: Suggest(source, msg, pos),
	}
}

// Validate checks source as strict JSON.
func Validate(source string) Result {
	return NewValidator().Validate(source)
}
