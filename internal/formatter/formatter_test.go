package formatter

import (
	"testing"

	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_SimpleObject(t *testing.T) {
	input := `{"name":"Ada","age":36,"tags":["math","engines"],"address":{"city":"London"},"empty":[]}`

	formatter := NewFormatter()
	formatted, err := formatter.Format(input)
	require.NoError(t, err)

	expectedOutput := `{
  "name": "Ada",
  "age": 36,
  "tags": [
    "math",
    "engines"
  ],
  "address": {
    "city": "London"
  },
  "empty": []
}`

	assert.Equal(t, expectedOutput, formatted)
}

func TestFormat_CustomIndent(t *testing.T) {
	formatted, err := NewFormatter().WithIndent("\t").Format(`{"a":[1]}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\": [\n\t\t1\n\t]\n}", formatted)

	formatted, err = NewFormatter().WithIndent("").Format(`{ "a" : [ 1 ] }`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1]}`, formatted)
}

func TestFormat_KeepsMemberOrderAndText(t *testing.T) {
	formatted, err := NewFormatter().Format(`{"z":"<tag> & é","a":1.50,"m":1e2}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": \"<tag> & é\",\n  \"a\": 1.5,\n  \"m\": 100\n}", formatted)
}

func TestFormat_Scalars(t *testing.T) {
	for input, want := range map[string]string{
		` true `: "true",
		`"s"`:    `"s"`,
		`-0.5`:   "-0.5",
		`null`:   "null",
		"[\n]":   "[]",
		"{ \n }": "{}",
	} {
		got, err := NewFormatter().Format(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestFormat_InvalidInput(t *testing.T) {
	_, err := NewFormatter().Format(`{"a":1,}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)

	_, err = NewFormatter().Format("   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestMinify(t *testing.T) {
	input := `{
  "name": "Ada",
  "list": [ 1, 2, { "deep": null } ]
}`
	minified, err := NewFormatter().Minify(input)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada","list":[1,2,{"deep":null}]}`, minified)

	_, err = NewFormatter().Minify(`[1 2]`)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)
}

func TestFormat_JWCC(t *testing.T) {
	input := `{
  // who
  "name": "Ada", /* inline */
  "list": [1, 2,],
}`

	_, err := NewFormatter().Format(input)
	require.Error(t, err)

	formatted, err := NewFormatter().WithJWCC(true).Format(input)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Ada\",\n  \"list\": [\n    1,\n    2\n  ]\n}", formatted)

	minified, err := NewFormatter().WithJWCC(true).Minify(input)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada","list":[1,2]}`, minified)
}

func TestStandardize(t *testing.T) {
	out, err := NewFormatter().Standardize("[1, 2, // two\n]")
	require.NoError(t, err)
	assert.NotContains(t, out, "//")
	assert.NotContains(t, out, ",\n")

	minified, err := NewFormatter().Minify(out)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, minified)

	_, err = NewFormatter().Standardize(`{"a": }`)
	assert.ErrorIs(t, err, errors.ErrInvalidJSON)
}
