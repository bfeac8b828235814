package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/mcncl/jsonsmith/internal/config"
	"github.com/mcncl/jsonsmith/internal/csvcodec"
	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/models"
)

// Regex patterns for recognized string and number formats
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// Time format patterns (ordered by specificity - most specific first)
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)            // 2006-01-02T15:04:05Z
	iso8601Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`) // ISO8601 variants
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                                         // 2006-01-02
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                               // 2006-01-02 15:04:05
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	unixTimestampRegex = regexp.MustCompile(`^1[0-9]{9}$`)  // Unix timestamp (seconds since 1970)
	unixMilliRegex     = regexp.MustCompile(`^1[0-9]{12}$`) // Unix timestamp in milliseconds
)

// Formats reported by Profile
const (
	FormatUUID       = "uuid"
	FormatDateTime   = "date-time"
	FormatDate       = "date"
	FormatEmail      = "email"
	FormatUnixTime   = "unix-time"
	FormatUnixMillis = "unix-millis"
	FormatInteger    = "integer"
)

// Analyzer describes the shape of parsed JSON values
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// Summary is a one-line description of a document
type Summary struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
	Depth int    `json:"depth"`
	Size  int    `json:"size"`
}

func (s Summary) String() string {
	switch s.Kind {
	case models.Array.String():
		return fmt.Sprintf("array, %d items", s.Count)
	case models.Object.String():
		return fmt.Sprintf("object, %d keys", s.Count)
	}
	return s.Kind
}

// Summarize describes v. Count is the number of elements or keys at the
// top level; Size is the length of source in characters.
func (a *Analyzer) Summarize(v models.Value, source string) Summary {
	return Summary{
		Kind:  v.Kind().String(),
		Count: v.Len(),
		Depth: depth(v),
		Size:  utf8.RuneCountInString(source),
	}
}

func depth(v models.Value) int {
	var deepest int
	switch v.Kind() {
	case models.Array:
		for _, item := range v.Items() {
			deepest = max(deepest, depth(item))
		}
	case models.Object:
		for _, m := range v.Members() {
			deepest = max(deepest, depth(m.Value))
		}
	default:
		return 0
	}
	return deepest + 1
}

// Columns returns the keys of the object elements of v in first-seen
// order, leaving out columns the configuration skips.
func (a *Analyzer) Columns(v models.Value) []string {
	var cols []string
	for _, k := range csvcodec.Headers(v) {
		if !a.config.SkipColumn(k) {
			cols = append(cols, k)
		}
	}
	return cols
}

// TableData is a rectangular projection of an array of objects. Rows line
// up with the array elements.
type TableData struct {
	Header []string
	Rows   [][]string
}

// Table projects v into rows and columns. Null cells read "null", missing
// ones are empty, and nested values are shown as compact JSON.
func (a *Analyzer) Table(v models.Value) (TableData, error) {
	if v.Kind() != models.Array {
		return TableData{}, errors.NewConversionError("only an array can be shown as a table", errors.ErrInvalidInput)
	}
	header := a.Columns(v)
	if len(header) == 0 {
		return TableData{}, errors.NewConversionError("no object elements to show", errors.ErrNotTabular)
	}

	td := TableData{Header: header, Rows: make([][]string, 0, v.Len())}
	for _, item := range v.Items() {
		row := make([]string, len(header))
		for i, h := range header {
			if cell, ok := item.Get(h); ok {
				row[i] = cell.Text()
			}
		}
		td.Rows = append(td.Rows, row)
	}
	return td, nil
}

// ColumnProfile summarizes the values found under one key
type ColumnProfile struct {
	Key     string   `json:"key"`
	Kinds   []string `json:"kinds"`
	Present int      `json:"present"`
	Nulls   int      `json:"nulls"`
	Format  string   `json:"format,omitempty"`
}

// Profile reports, for every column of an array of objects, which kinds
// of value occur and how often it is present. Format is set when every
// non-null value has the same recognized format.
func (a *Analyzer) Profile(v models.Value) ([]ColumnProfile, error) {
	if v.Kind() != models.Array {
		return nil, errors.NewConversionError("only an array can be profiled", errors.ErrInvalidInput)
	}

	cols := a.Columns(v)
	profiles := make([]ColumnProfile, 0, len(cols))
	for _, key := range cols {
		p := ColumnProfile{Key: key}
		kinds := make(map[string]struct{})
		format, mixed := "", false

		for _, item := range v.Items() {
			cell, ok := item.Get(key)
			if !ok {
				continue
			}
			p.Present++
			kinds[cell.Kind().String()] = struct{}{}
			if cell.IsNull() {
				p.Nulls++
				continue
			}

			f := detectFormat(cell)
			switch {
			case mixed:
			case format == "":
				format = f
				mixed = f == ""
			case f != format:
				format, mixed = "", true
			}
		}

		for k := range kinds {
			p.Kinds = append(p.Kinds, k)
		}
		sort.Strings(p.Kinds)
		if !mixed {
			p.Format = format
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func detectFormat(v models.Value) string {
	switch v.Kind() {
	case models.String:
		return analyzeString(v.Str())
	case models.Number:
		return analyzeNumber(v.Float())
	}
	return ""
}

func analyzeString(s string) string {
	if uuidRegex.MatchString(s) {
		return FormatUUID
	}

	// Check for various time formats (ordered by specificity)
	if rfc3339Regex.MatchString(s) || iso8601Regex.MatchString(s) || dateTimeRegex.MatchString(s) {
		return FormatDateTime
	}
	if dateOnlyRegex.MatchString(s) {
		return FormatDate
	}
	if emailRegex.MatchString(s) {
		return FormatEmail
	}
	return ""
}

func analyzeNumber(f float64) string {
	if f != float64(int64(f)) {
		return ""
	}
	numStr := strconv.FormatInt(int64(f), 10)

	// Unix timestamps are a common pattern in APIs
	if unixTimestampRegex.MatchString(numStr) {
		return FormatUnixTime
	}
	if unixMilliRegex.MatchString(numStr) {
		return FormatUnixMillis
	}
	return FormatInteger
}
