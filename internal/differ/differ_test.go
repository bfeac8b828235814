package differ

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mcncl/jsonsmith/internal/models"
	"github.com/mcncl/jsonsmith/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var valueEqual = cmp.Comparer(func(a, b models.Value) bool { return a.Equal(b) })

func mustParse(t *testing.T, src string) models.Value {
	t.Helper()
	v, err := parser.ParseString(src)
	require.NoError(t, err)
	return v
}

func ptr(t *testing.T, src string) *models.Value {
	v := mustParse(t, src)
	return &v
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want []Record
	}{
		{
			name: "changed member",
			a:    `{"x":1}`,
			b:    `{"x":2}`,
			want: []Record{{Kind: Modified, Path: "x", Old: ptr(t, `1`), New: ptr(t, `2`)}},
		},
		{
			name: "root scalar",
			a:    `1`,
			b:    `2`,
			want: []Record{{Kind: Modified, Path: "root", Old: ptr(t, `1`), New: ptr(t, `2`)}},
		},
		{
			name: "root kind change",
			a:    `{}`,
			b:    `[]`,
			want: []Record{{Kind: Modified, Path: "root", Old: ptr(t, `{}`), New: ptr(t, `[]`)}},
		},
		{
			name: "null is not an object",
			a:    `{"a":null}`,
			b:    `{"a":{}}`,
			want: []Record{{Kind: Modified, Path: "a", Old: ptr(t, `null`), New: ptr(t, `{}`)}},
		},
		{
			name: "number is not a string",
			a:    `[1]`,
			b:    `["1"]`,
			want: []Record{{Kind: Modified, Path: "[0]", Old: ptr(t, `1`), New: ptr(t, `"1"`)}},
		},
		{
			name: "kind change stops descent",
			a:    `{"a":{"b":1}}`,
			b:    `{"a":[1]}`,
			want: []Record{{Kind: Modified, Path: "a", Old: ptr(t, `{"b":1}`), New: ptr(t, `[1]`)}},
		},
		{
			name: "array grows",
			a:    `[1,2]`,
			b:    `[1,3,4]`,
			want: []Record{
				{Kind: Modified, Path: "[1]", Old: ptr(t, `2`), New: ptr(t, `3`)},
				{Kind: Added, Path: "[2]", Value: ptr(t, `4`)},
			},
		},
		{
			name: "array shrinks",
			a:    `{"list":[true,false]}`,
			b:    `{"list":[]}`,
			want: []Record{
				{Kind: Removed, Path: "list[0]", Value: ptr(t, `true`)},
				{Kind: Removed, Path: "list[1]", Value: ptr(t, `false`)},
			},
		},
		{
			name: "nested pre-order",
			a:    `{"users":[{"name":"a","age":1}],"v":true}`,
			b:    `{"users":[{"name":"b"}],"v":true,"n":null}`,
			want: []Record{
				{Kind: Modified, Path: "users[0].name", Old: ptr(t, `"a"`), New: ptr(t, `"b"`)},
				{Kind: Removed, Path: "users[0].age", Value: ptr(t, `1`)},
				{Kind: Added, Path: "n", Value: ptr(t, `null`)},
			},
		},
		{
			name: "nested arrays",
			a:    `[[1],[2]]`,
			b:    `[[1],[2,{"k":0}]]`,
			want: []Record{{Kind: Added, Path: "[1][1]", Value: ptr(t, `{"k":0}`)}},
		},
		{
			name: "member order does not matter",
			a:    `{"a":1,"b":2}`,
			b:    `{"b":2,"a":1}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(mustParse(t, tt.a), mustParse(t, tt.b))
			if diff := cmp.Diff(tt.want, got, valueEqual); diff != "" {
				t.Errorf("Diff(%s, %s) mismatch (-want +got):\n%s", tt.a, tt.b, diff)
			}
		})
	}
}

var samples = []string{
	`null`, `0`, `"s"`, `true`, `[]`, `{}`,
	`[1,2,3]`,
	`{"a":1,"b":[1,{"c":null}],"d":{"e":"f"}}`,
	`{"a":2,"b":[1],"g":false}`,
	`[{"id":1,"tags":["x"]},{"id":2}]`,
	`[{"id":1,"tags":["x","y"]}]`,
}

func TestDiff_SameValueIsEmpty(t *testing.T) {
	for _, src := range samples {
		v := mustParse(t, src)
		assert.Empty(t, Diff(v, v), src)
	}
}

func TestDiff_Symmetric(t *testing.T) {
	flip := map[Kind]Kind{Added: Removed, Removed: Added}

	for _, as := range samples {
		for _, bs := range samples {
			forward := Diff(mustParse(t, as), mustParse(t, bs))
			backward := Diff(mustParse(t, bs), mustParse(t, as))

			for _, r := range forward {
				want := r
				switch r.Kind {
				case Added, Removed:
					want.Kind = flip[r.Kind]
				case Modified:
					want.Old, want.New = r.New, r.Old
				}
				found := false
				for _, s := range backward {
					if cmp.Equal(want, s, valueEqual) {
						found = true
						break
					}
				}
				assert.True(t, found, "diff(%s, %s) has %+v with no mirror", as, bs, r)
			}
			assert.Len(t, backward, len(forward))
		}
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(Diff(
		mustParse(t, `{"users":[{"name":"a","age":1}],"v":true}`),
		mustParse(t, `{"users":[{"name":"b"}],"v":true,"n":null}`),
	))
	assert.Equal(t, Summary{Added: 1, Removed: 1, Modified: 1}, got)
}
