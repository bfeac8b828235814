package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/models"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// SyntaxError reports malformed JSON text. Its message always ends in
// "at position N", where N is the byte offset of the offending input.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Offset)
}

// Check reports whether src is a single well-formed JSON value. It accepts
// exactly the RFC 8259 grammar: no comments, trailing commas or unquoted keys.
func Check(src string) error {
	var raw json.RawMessage
	err := json.Unmarshal([]byte(src), &raw)
	if err == nil {
		return nil
	}
	var syn *json.SyntaxError
	if !stderrors.As(err, &syn) {
		return err
	}
	// Offset counts the bytes read, including the one that failed. At the
	// end of input there is no offending byte, so report the length.
	pos := int(syn.Offset)
	if !strings.Contains(syn.Error(), "unexpected end") {
		pos--
	}
	pos = max(0, min(pos, len(src)))
	return &SyntaxError{Msg: syn.Error(), Offset: pos}
}

// CheckJWCC reports whether src is well-formed JSON With Commas and
// Comments. Errors from this check describe their location by line and
// column rather than by offset.
func CheckJWCC(src string) error {
	_, err := hujson.Parse([]byte(src))
	return err
}

// Standardize rewrites JWCC text as standard JSON, dropping comments and
// trailing commas. Whitespace is preserved.
func Standardize(src string) (string, error) {
	out, err := hujson.Standardize([]byte(src))
	if err != nil {
		return "", errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
	}
	return string(out), nil
}

// ParseString parses src as a single JSON value.
func ParseString(src string) (models.Value, error) {
	if strings.TrimSpace(src) == "" {
		return models.Value{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	if err := Check(src); err != nil {
		return models.Value{}, errors.NewParsingError(err.Error(), fmt.Errorf("%w: %w", errors.ErrInvalidJSON, err))
	}
	return build(gjson.Parse(src)), nil
}

// ParseJWCC parses src as JWCC and returns its value.
func ParseJWCC(src string) (models.Value, error) {
	if strings.TrimSpace(src) == "" {
		return models.Value{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	std, err := Standardize(src)
	if err != nil {
		return models.Value{}, err
	}
	return ParseString(std)
}

// Parse reads all of r and parses it as a single JSON value.
func Parse(r io.Reader) (models.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ReadFile returns the text content of filePath.
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", filePath), errors.ErrFileNotFound)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(fmt.Sprintf("input file '%s' is empty", filePath), errors.ErrFileEmpty)
	}
	return string(data), nil
}

// ParseFile parses the JSON value stored in filePath.
func ParseFile(filePath string) (models.Value, error) {
	src, err := ReadFile(filePath)
	if err != nil {
		return models.Value{}, err
	}
	return ParseString(src)
}

// build converts a validated gjson result into a Value, keeping object
// members in source order.
func build(r gjson.Result) models.Value {
	switch r.Type {
	case gjson.True:
		return models.BoolValue(true)
	case gjson.False:
		return models.BoolValue(false)
	case gjson.Number:
		return models.NumberValue(r.Num)
	case gjson.String:
		return models.StringValue(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			arr := models.ArrayValue()
			r.ForEach(func(_, item gjson.Result) bool {
				arr.Append(build(item))
				return true
			})
			return arr
		}
		obj := models.ObjectValue()
		r.ForEach(func(key, val gjson.Result) bool {
			obj.Set(key.Str, build(val))
			return true
		})
		return obj
	}
	return models.NullValue()
}
