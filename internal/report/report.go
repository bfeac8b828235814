// Package report renders results as terminal text
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/mcncl/jsonsmith/internal/analyzer"
	"github.com/mcncl/jsonsmith/internal/config"
	"github.com/mcncl/jsonsmith/internal/differ"
	"github.com/mcncl/jsonsmith/internal/models"
	"github.com/mcncl/jsonsmith/internal/schema"
	"github.com/mcncl/jsonsmith/internal/validator"
	"github.com/tidwall/pretty"
)

// maxCellWidth bounds table columns; longer cells are truncated.
const maxCellWidth = 40

// UseColor resolves a color mode. In auto mode color is used only when
// writing to a terminal that has not opted out via NO_COLOR or TERM=dumb.
func UseColor(mode string, toTerminal bool) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return toTerminal && !color.NoColor
}

// Renderer turns results into text, optionally with ANSI colors
type Renderer struct {
	colored bool

	good *color.Color
	bad  *color.Color
	warn *color.Color
	dim  *color.Color
	head *color.Color
}

// New creates a Renderer
func New(colored bool) *Renderer {
	r := &Renderer{
		colored: colored,
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		dim:     color.New(color.Faint),
		head:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.good, r.bad, r.warn, r.dim, r.head} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Validation renders a validator verdict with its location and hints
func (r *Renderer) Validation(res validator.Result) string {
	if res.IsValid {
		return r.good.Sprint("✓ Valid JSON") + "\n"
	}

	var buf bytes.Buffer
	buf.WriteString(r.bad.Sprint("✗ Invalid JSON: "+res.Error) + "\n")
	if res.Position != nil {
		if where := describePosition(*res.Position); where != "" {
			buf.WriteString("  at " + where + "\n")
		}
	}

	if len(res.Suggestions) > 0 {
		buf.WriteString("\n" + r.head.Sprint("Suggestions:") + "\n")
		for _, s := range res.Suggestions {
			fmt.Fprintf(&buf, "  • %s\n", s.Message)
			if s.Fix != "" {
				buf.WriteString(r.dim.Sprint("    fix: "+s.Fix) + "\n")
			}
		}
	}
	return buf.String()
}

func describePosition(p validator.Position) string {
	var parts []string
	if p.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d, column %d", p.Line, p.Column))
	}
	if p.CharIndex >= 0 {
		parts = append(parts, fmt.Sprintf("position %d", p.CharIndex))
	}
	switch len(parts) {
	case 2:
		return parts[0] + " (" + parts[1] + ")"
	case 1:
		return parts[0]
	}
	return ""
}

// Violations renders the outcome of a schema check
func (r *Renderer) Violations(name string, violations []schema.Violation) string {
	if len(violations) == 0 {
		return r.good.Sprintf("✓ Matches %s", name) + "\n"
	}

	var buf bytes.Buffer
	buf.WriteString(r.bad.Sprintf("✗ Does not match %s", name) + "\n")
	for _, v := range violations {
		fmt.Fprintf(&buf, "  - %s: %s\n", r.head.Sprint(v.Keyword), v.Message)
	}
	return buf.String()
}

// Diff renders change records one per line, followed by a tally
func (r *Renderer) Diff(records []differ.Record) string {
	if len(records) == 0 {
		return "No differences\n"
	}

	var buf bytes.Buffer
	for _, rec := range records {
		switch rec.Kind {
		case differ.Added:
			buf.WriteString(r.good.Sprintf("+ %s: %s", rec.Path, rec.Value.JSON()) + "\n")
		case differ.Removed:
			buf.WriteString(r.bad.Sprintf("- %s: %s", rec.Path, rec.Value.JSON()) + "\n")
		case differ.Modified:
			buf.WriteString(r.warn.Sprintf("~ %s: %s → %s", rec.Path, rec.Old.JSON(), rec.New.JSON()) + "\n")
		}
	}

	s := differ.Summarize(records)
	buf.WriteString(r.dim.Sprintf("\n%d added, %d removed, %d modified", s.Added, s.Removed, s.Modified) + "\n")
	return buf.String()
}

// Value renders v as indented JSON, highlighted when colors are on
func (r *Renderer) Value(v models.Value, indent string) string {
	return r.Highlight(v.Indent(indent)) + "\n"
}

// Highlight adds syntax colors to JSON text when colors are on
func (r *Renderer) Highlight(text string) string {
	if !r.colored {
		return text
	}
	return string(pretty.Color([]byte(text), pretty.TerminalStyle))
}

// Table renders tabular data with a leading row-number column
func (r *Renderer) Table(td analyzer.TableData) string {
	header := append([]string{"#"}, td.Header...)
	rows := make([][]string, len(td.Rows))
	for i, row := range td.Rows {
		rows[i] = append([]string{strconv.Itoa(i)}, row...)
	}
	return r.grid(header, rows)
}

// Stats renders a document summary and, for arrays, a column profile
func (r *Renderer) Stats(sum analyzer.Summary, profiles []analyzer.ColumnProfile) string {
	var buf bytes.Buffer
	buf.WriteString(r.head.Sprint(sum.String()) + "\n")
	fmt.Fprintf(&buf, "depth: %d\n", sum.Depth)
	fmt.Fprintf(&buf, "size:  %d characters\n", sum.Size)

	if len(profiles) == 0 {
		return buf.String()
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Key,
			strings.Join(p.Kinds, "|"),
			strconv.Itoa(p.Present),
			strconv.Itoa(p.Nulls),
			p.Format,
		})
	}
	buf.WriteString("\n")
	buf.WriteString(r.grid([]string{"column", "kinds", "present", "nulls", "format"}, rows))
	return buf.String()
}

func (r *Renderer) grid(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	cells := func(row []string) []string {
		out := make([]string, len(header))
		for i := range out {
			if i < len(row) {
				out[i] = cellText(row[i])
			}
			widths[i] = max(widths[i], runewidth.StringWidth(out[i]))
		}
		return out
	}

	head := cells(header)
	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = cells(row)
	}

	var buf bytes.Buffer
	line := func(row []string, c *color.Color) {
		padded := make([]string, len(row))
		for i, cell := range row {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		text := strings.TrimRight(strings.Join(padded, "  "), " ")
		if c != nil {
			text = c.Sprint(text)
		}
		buf.WriteString(text + "\n")
	}

	line(head, r.head)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	line(rules, r.dim)
	for _, row := range body {
		line(row, nil)
	}
	return buf.String()
}

func cellText(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if runewidth.StringWidth(s) > maxCellWidth {
		s = runewidth.Truncate(s, maxCellWidth, "…")
	}
	return s
}

// Tree renders v as an outline: one line per value, containers annotated
// with their size and closed on their own line.
func (r *Renderer) Tree(v models.Value) string {
	var buf bytes.Buffer
	r.tree(&buf, v, "", 0)
	return buf.String()
}

func (r *Renderer) tree(buf *bytes.Buffer, v models.Value, label string, level int) {
	pad := strings.Repeat("  ", level)
	buf.WriteString(pad + label)

	switch v.Kind() {
	case models.Array:
		buf.WriteString("[ " + r.dim.Sprintf("%d items", v.Len()) + "\n")
		for i, item := range v.Items() {
			r.tree(buf, item, r.head.Sprint(strconv.Itoa(i))+": ", level+1)
		}
		buf.WriteString(pad + "]\n")
	case models.Object:
		buf.WriteString("{ " + r.dim.Sprintf("%d keys", v.Len()) + "\n")
		for _, m := range v.Members() {
			r.tree(buf, m.Value, r.head.Sprint(strconv.Quote(m.Key))+": ", level+1)
		}
		buf.WriteString(pad + "}\n")
	case models.String:
		buf.WriteString(r.good.Sprint(v.JSON()) + "\n")
	case models.Null:
		buf.WriteString(r.dim.Sprint("null") + "\n")
	default:
		buf.WriteString(r.warn.Sprint(v.JSON()) + "\n")
	}
}
