// Package differ compares two JSON values structurally.
package differ

import (
	"strconv"

	"github.com/mcncl/jsonsmith/internal/models"
)

// Kind classifies a Record.
type Kind string

const (
	Added    Kind = "added"
	Removed  Kind = "removed"
	Modified Kind = "modified"
)

// Record is one difference between two values. Added and Removed records
// carry Value; Modified records carry Old and New.
type Record struct {
	Kind  Kind          `json:"kind"`
	Path  string        `json:"path"`
	Old   *models.Value `json:"old,omitempty"`
	New   *models.Value `json:"new,omitempty"`
	Value *models.Value `json:"value,omitempty"`
}

// RootPath names the top-level value when it is replaced outright.
const RootPath = "root"

// Diff returns the differences that turn a into b, in depth-first
// pre-order. Array elements are compared by index and object members by
// key: keys of a come first in a's order, followed by keys only b has.
//
// Paths look like "users[2].name"; a Modified record for the root itself
// uses RootPath.
func Diff(a, b models.Value) []Record {
	var d differ
	d.walk(a, b, "")
	return d.records
}

type differ struct {
	records []Record
}

func (d *differ) emit(r Record) { d.records = append(d.records, r) }

func (d *differ) walk(a, b models.Value, path string) {
	if a.Kind() != b.Kind() {
		d.modified(a, b, path)
		return
	}

	switch a.Kind() {
	case models.Array:
		d.walkArray(a, b, path)
	case models.Object:
		d.walkObject(a, b, path)
	default:
		if !scalarEqual(a, b) {
			d.modified(a, b, path)
		}
	}
}

func (d *differ) modified(a, b models.Value, path string) {
	if path == "" {
		path = RootPath
	}
	d.emit(Record{Kind: Modified, Path: path, Old: &a, New: &b})
}

func (d *differ) walkArray(a, b models.Value, path string) {
	ai, bi := a.Items(), b.Items()
	for i := 0; i < max(len(ai), len(bi)); i++ {
		p := path + "[" + strconv.Itoa(i) + "]"
		switch {
		case i >= len(ai):
			d.emit(Record{Kind: Added, Path: p, Value: &bi[i]})
		case i >= len(bi):
			d.emit(Record{Kind: Removed, Path: p, Value: &ai[i]})
		default:
			d.walk(ai[i], bi[i], p)
		}
	}
}

func (d *differ) walkObject(a, b models.Value, path string) {
	for _, m := range a.Members() {
		p := memberPath(path, m.Key)
		if bv, ok := b.Get(m.Key); ok {
			d.walk(m.Value, bv, p)
		} else {
			d.emit(Record{Kind: Removed, Path: p, Value: &m.Value})
		}
	}
	for _, m := range b.Members() {
		if !a.Has(m.Key) {
			d.emit(Record{Kind: Added, Path: memberPath(path, m.Key), Value: &m.Value})
		}
	}
}

func memberPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func scalarEqual(a, b models.Value) bool {
	switch a.Kind() {
	case models.Null:
		return true
	case models.Bool:
		return a.Bool() == b.Bool()
	case models.Number:
		return a.Float() == b.Float()
	case models.String:
		return a.Str() == b.Str()
	}
	return false
}

// Summary counts records by kind.
type Summary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Summarize tallies records.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Modified:
			s.Modified++
		}
	}
	return s
}
