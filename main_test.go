package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const people = `{"users": [{"name": "Ada", "id": 1}, {"name": "Grace", "id": 2}]}`

// runCLI executes the command line in-process and returns its exit
// status, stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_ValidFile(t *testing.T) {
	path := writeFile(t, "people.json", people)

	code, stdout, stderr := runCLI(t, "", "validate", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "✓ Valid JSON\n", stdout)
	assert.Empty(t, stderr)
}

func TestValidate_InvalidStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, "{\n  \"a\": 1,\n}", "validate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout, "✗ Invalid JSON")
	assert.Contains(t, stdout, "at line 3, column 1 (position 12)")
	assert.Contains(t, stdout, "Suggestions:")
}

func TestValidate_JSONOutput(t *testing.T) {
	code, stdout, _ := runCLI(t, `{"a": }`, "validate", "--json")
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout, `"isValid": false`)
	assert.Contains(t, stdout, `"errorPosition"`)
	assert.Contains(t, stdout, `"suggestions"`)
}

func TestValidate_EmptyInput(t *testing.T) {
	code, stdout, _ := runCLI(t, "  \n", "validate")
	assert.Equal(t, 2, code)
	assert.Equal(t, "✗ Invalid JSON: empty input\n", stdout)
}

func TestValidate_JWCC(t *testing.T) {
	input := "{\n  // note\n  \"a\": 1,\n}"

	code, _, _ := runCLI(t, input, "validate")
	assert.Equal(t, 2, code)

	code, stdout, _ := runCLI(t, input, "validate", "--jwcc")
	assert.Equal(t, 0, code)
	assert.Equal(t, "✓ Valid JSON\n", stdout)
}

func TestValidate_Serialized(t *testing.T) {
	code, stdout, _ := runCLI(t, `"{\"a\":1,\"b\":[true]}"`, "validate", "--serialized")
	assert.Equal(t, 0, code)
	assert.Equal(t, "✓ Valid JSON\n", stdout)
}

func TestValidate_Schema(t *testing.T) {
	schemaPath := writeFile(t, "user.schema.json", `{
		"title": "User",
		"type": "object",
		"required": ["id", "name"],
		"properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
	}`)

	code, stdout, _ := runCLI(t, `{"id": 1, "name": "Ada"}`, "validate", "--schema", schemaPath)
	assert.Equal(t, 0, code)
	assert.Equal(t, "✓ Valid JSON\n✓ Matches User\n", stdout)

	code, stdout, _ = runCLI(t, `{"id": 1}`, "validate", "--schema", schemaPath)
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout, "✓ Valid JSON\n✗ Does not match User\n")

	code, _, stderr := runCLI(t, `{}`, "validate", "--schema", filepath.Join(t.TempDir(), "none.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Schema error: failed to read schema file")
}

func TestRepair(t *testing.T) {
	code, stdout, stderr := runCLI(t, `{'a': 1,}`, "repair")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"a\": 1}\n", stdout)
	assert.Empty(t, stderr)

	code, stdout, stderr = runCLI(t, "{\"a\": 1}\n", "repair")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"a\": 1}\n", stdout)
	assert.Equal(t, "No changes needed\n", stderr)
}

func TestRepair_Deep(t *testing.T) {
	code, stdout, _ := runCLI(t, `{"a": [1, 2`, "repair", "--deep")
	assert.Equal(t, 0, code)

	code, _, _ = runCLI(t, stdout, "validate")
	assert.Equal(t, 0, code, stdout)
}

func TestFormatAndMinify(t *testing.T) {
	code, stdout, _ := runCLI(t, `{"a":[1]}`, "format")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}\n", stdout)

	code, stdout, _ = runCLI(t, `{"a":[1]}`, "format", "--indent", "4")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", stdout)

	code, stdout, _ = runCLI(t, "{\n  \"a\": [ 1, 2 ]\n}", "minify")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"a\":[1,2]}\n", stdout)

	code, _, stderr := runCLI(t, `{"a":1,}`, "format")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "JSON parsing error: "), stderr)
}

func TestStandardizeAndDeserialize(t *testing.T) {
	code, stdout, _ := runCLI(t, "[1, /* two */ 2,]", "standardize")
	assert.Equal(t, 0, code)
	assert.NotContains(t, stdout, "/*")

	code, stdout, _ = runCLI(t, `"{\"a\":[1,2]}"`, "deserialize")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"a\":[1,2]}\n", stdout)
}

func TestQuery(t *testing.T) {
	path := writeFile(t, "people.json", people)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"member", []string{"query", "users[1].name", path}, "\"Grace\"\n"},
		{"raw", []string{"query", "--raw", "users[1].name", path}, "Grace\n"},
		{"descent", []string{"query", "$..id", path}, "[\n  1,\n  2\n]\n"},
		{"missing", []string{"query", "users[5]", path}, "undefined\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, "", tt.args...)
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestQuery_FromStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, people, "query", "users[0].id")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1\n", stdout)
}

func TestConfigFile(t *testing.T) {
	cfgPath := writeFile(t, ".jsonsmith.yml", `
format:
  indent: 4
query:
  aliases:
    second: users[1].name
csv:
  header_case: screaming_snake
  skip:
    - pattern: "^_"
      comment: internal ids
`)

	code, stdout, _ := runCLI(t, people, "--config", cfgPath, "query", "second")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\"Grace\"\n", stdout)

	code, stdout, _ = runCLI(t, `[{"_id": 7, "userName": "a"}]`, "--config", cfgPath, "to-csv")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\"USER_NAME\"\n\"a\"\n", stdout)

	code, stdout, _ = runCLI(t, `{"a":1}`, "--config", cfgPath, "format")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n    \"a\": 1\n}\n", stdout)
}

func TestConfigFile_Invalid(t *testing.T) {
	cfgPath := writeFile(t, "bad.yml", "format:\n  color: sometimes\n")

	code, _, stderr := runCLI(t, `{}`, "--config", cfgPath, "format")
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "Configuration error: "), stderr)
}

func TestDiff(t *testing.T) {
	left := writeFile(t, "left.json", `{"a": 1, "b": [1]}`)
	right := writeFile(t, "right.json", `{"a": 2, "b": [1, 2], "c": null}`)

	code, stdout, _ := runCLI(t, "", "diff", left, right)
	assert.Equal(t, 0, code)
	assert.Equal(t, "~ a: 1 → 2\n+ b[1]: 2\n+ c: null\n\n2 added, 0 removed, 1 modified\n", stdout)

	code, _, _ = runCLI(t, "", "diff", "--exit-code", left, right)
	assert.Equal(t, 1, code)

	code, stdout, _ = runCLI(t, "", "diff", "--exit-code", left, left)
	assert.Equal(t, 0, code)
	assert.Equal(t, "No differences\n", stdout)

	code, stdout, _ = runCLI(t, `{"a": 1, "b": [1]}`, "diff", "--json", "-", left)
	assert.Equal(t, 0, code)
	assert.Equal(t, "[]\n", stdout)
}

func TestCSV(t *testing.T) {
	code, stdout, _ := runCLI(t, `[{"a": 1, "b": "x"}, {"b": "y, z"}]`, "to-csv")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\"a\",\"b\"\n1,\"x\"\n,\"y, z\"\n", stdout)

	code, stdout, _ = runCLI(t, "name,age\nAda,36\n", "from-csv")
	assert.Equal(t, 0, code)
	assert.Equal(t, "[\n  {\n    \"name\": \"Ada\",\n    \"age\": 36\n  }\n]\n", stdout)

	code, _, stderr := runCLI(t, `{"a": 1}`, "to-csv")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Conversion error: cannot convert object to CSV\n", stderr)
}

func TestTable_FromCSVFile(t *testing.T) {
	path := writeFile(t, "people.csv", "name,age\nAda,36\nGrace,45\n")

	code, stdout, _ := runCLI(t, "", "table", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "#  name   age\n-  -----  ---\n0  Ada    36\n1  Grace  45\n", stdout)
}

func TestStatsAndTree(t *testing.T) {
	code, stdout, _ := runCLI(t, `[{"id": 1}, {"id": 2}]`, "stats", "--json")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `"kind": "array"`)
	assert.Contains(t, stdout, `"count": 2`)
	assert.Contains(t, stdout, `"key": "id"`)

	code, stdout, _ = runCLI(t, `{"a": 1}`, "stats")
	assert.Equal(t, 0, code)
	assert.Equal(t, "object, 1 keys\ndepth: 1\nsize:  8 characters\n", stdout)

	code, stdout, _ = runCLI(t, `{"a":[1]}`, "tree")
	assert.Equal(t, 0, code)
	assert.Equal(t, "{ 1 keys\n  \"a\": [ 1 items\n    0: 1\n  ]\n}\n", stdout)
}

func TestOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "min.json")

	code, stdout, stderr := runCLI(t, "{ \"a\" : 1 }", "-o", out, "minify")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Output written to "+out+"\n", stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(data))
}

func TestInputErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	code, _, stderr := runCLI(t, "", "format", missing)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Input error: file '"+missing+"' not found")

	code, _, stderr = runCLI(t, "", "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "For help, run: jsonsmith --help")
}

func TestDebugLogging(t *testing.T) {
	code, _, stderr := runCLI(t, `{}`, "--debug", "minify")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "read stdin")

	_, _, stderr = runCLI(t, `{}`, "minify")
	assert.NotContains(t, stderr, "level=DEBUG")
}

func TestReadInteractiveInput(t *testing.T) {
	var stderr bytes.Buffer
	ctx := &Context{In: strings.NewReader("{\"a\": 1}\n[2"), Err: &stderr}

	text, err := ctx.readInteractiveInput()
	require.NoError(t, err)
	assert.Equal(t, "{\"a\": 1}\n[2", text)
	assert.Contains(t, stderr.String(), "Ctrl+D")

	ctx.In = strings.NewReader("")
	_, err = ctx.readInteractiveInput()
	assert.Error(t, err)
}
