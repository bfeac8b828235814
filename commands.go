package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/jsonsmith/internal/analyzer"
	"github.com/mcncl/jsonsmith/internal/csvcodec"
	"github.com/mcncl/jsonsmith/internal/differ"
	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/formatter"
	"github.com/mcncl/jsonsmith/internal/models"
	"github.com/mcncl/jsonsmith/internal/parser"
	"github.com/mcncl/jsonsmith/internal/query"
	"github.com/mcncl/jsonsmith/internal/repair"
	"github.com/mcncl/jsonsmith/internal/schema"
	"github.com/mcncl/jsonsmith/internal/validator"
)

// ValidateCmd checks input and explains parse errors. It exits with
// status 2 when the input is invalid or does not match the schema.
type ValidateCmd struct {
	Input      string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Serialized bool   `help:"Input is a JSON document escaped inside a string literal." short:"s"`
	JWCC       bool   `help:"Accept comments and trailing commas." name:"jwcc"`
	Schema     string `help:"JSON Schema file the document must satisfy." type:"path"`
	JSON       bool   `help:"Print the verdict as JSON." name:"json"`
}

type validation struct {
	validator.Result
	Schema     string             `json:"schema,omitempty"`
	Violations []schema.Violation `json:"violations,omitempty"`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}
	if c.Serialized {
		text = repair.Deserialize(text)
	}

	jwcc := c.JWCC || ctx.Config.Validate.JWCC
	host := validator.StrictJSON
	if jwcc {
		host = validator.JWCC
	}
	verdict := validation{Result: validator.NewValidatorWithParser(host).Validate(text)}
	ctx.Logger.Debug("validated input", "valid", verdict.IsValid, "jwcc", jwcc)

	schemaPath := c.Schema
	if schemaPath == "" {
		schemaPath = ctx.Config.Validate.Schema
	}
	if verdict.IsValid && schemaPath != "" {
		checker, err := schema.ParseFile(schemaPath)
		if err != nil {
			return err
		}
		doc, err := parseText(text, jwcc)
		if err != nil {
			return err
		}
		verdict.Schema = checker.Info().Name()
		verdict.Violations = checker.Check(doc)
		ctx.Logger.Debug("checked schema", "schema", schemaPath, "violations", len(verdict.Violations))
	}

	var out string
	if c.JSON {
		data, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode result", err)
		}
		out = string(data)
	} else {
		out = ctx.Render.Validation(verdict.Result)
		if verdict.Schema != "" {
			out += ctx.Render.Violations(verdict.Schema, verdict.Violations)
		}
	}
	if err := ctx.writeOutput(out); err != nil {
		return err
	}

	if !verdict.IsValid || len(verdict.Violations) > 0 {
		return exitError{code: 2}
	}
	return nil
}

// RepairCmd rewrites input to fix common mistakes
type RepairCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Deep  bool   `help:"Fall back to a full repair parser when the quick fixes are not enough."`
}

func (c *RepairCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}

	var out string
	if c.Deep || ctx.Config.Repair.Deep {
		out, err = repair.Deep(text)
		if err != nil {
			return err
		}
	} else {
		var fired []string
		out, fired = repair.Run(text)
		ctx.Logger.Debug("applied repair rules", "rules", fired)
	}

	if out == strings.TrimSpace(text) {
		fmt.Fprintln(ctx.Err, "No changes needed")
	}
	return ctx.writeOutput(out)
}

// FormatCmd pretty-prints input
type FormatCmd struct {
	Input  string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	Indent int    `help:"Spaces per level; 0 indents with tabs. Defaults to the configured indent." default:"-1"`
	JWCC   bool   `help:"Accept comments and trailing commas." name:"jwcc"`
}

func (c *FormatCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatter().
		WithIndent(ctx.indent(c.Indent)).
		WithJWCC(c.JWCC || ctx.Config.Validate.JWCC).
		Format(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(ctx.Render.Highlight(out))
}

// MinifyCmd strips insignificant whitespace
type MinifyCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	JWCC  bool   `help:"Accept comments and trailing commas." name:"jwcc"`
}

func (c *MinifyCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatter().WithJWCC(c.JWCC || ctx.Config.Validate.JWCC).Minify(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// StandardizeCmd turns JWCC into standard JSON, keeping the layout
type StandardizeCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
}

func (c *StandardizeCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatter().Standardize(text)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// DeserializeCmd unescapes a serialized JSON string
type DeserializeCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
}

func (c *DeserializeCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}
	return ctx.writeOutput(repair.Deserialize(text))
}

// DiffCmd compares two documents
type DiffCmd struct {
	Left     string `arg:"" help:"Original document. Use - for stdin." type:"path"`
	Right    string `arg:"" help:"Changed document. Use - for stdin." type:"path"`
	JWCC     bool   `help:"Accept comments and trailing commas." name:"jwcc"`
	JSON     bool   `help:"Print the differences as JSON." name:"json"`
	ExitCode bool   `help:"Exit with status 1 when the documents differ."`
}

func (c *DiffCmd) Run(ctx *Context) error {
	if c.Left == "-" && c.Right == "-" {
		return errors.NewInputError("only one side of a diff can be read from stdin", errors.ErrInvalidFilePath)
	}

	left, _, err := ctx.loadValue(c.Left, c.JWCC)
	if err != nil {
		return err
	}
	right, _, err := ctx.loadValue(c.Right, c.JWCC)
	if err != nil {
		return err
	}

	records := differ.Diff(left, right)
	ctx.Logger.Debug("compared documents", "records", len(records))

	var out string
	if c.JSON {
		if records == nil {
			records = []differ.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode differences", err)
		}
		out = string(data)
	} else {
		out = ctx.Render.Diff(records)
	}
	if err := ctx.writeOutput(out); err != nil {
		return err
	}

	if c.ExitCode && len(records) > 0 {
		return exitError{code: 1}
	}
	return nil
}

// QueryCmd evaluates a path expression
type QueryCmd struct {
	Path  string `arg:"" help:"Path such as users[0].name or $..id, or an alias from the config file."`
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	JWCC  bool   `help:"Accept comments and trailing commas." name:"jwcc"`
	Raw   bool   `help:"Print string results without quotes." short:"r"`
}

func (c *QueryCmd) Run(ctx *Context) error {
	data, _, err := ctx.loadValue(c.Input, c.JWCC)
	if err != nil {
		return err
	}

	path := ctx.Config.ResolveQuery(c.Path)
	if path != c.Path {
		ctx.Logger.Debug("expanded query alias", "alias", c.Path, "path", path)
	}

	result, ok := query.Eval(data, path)
	switch {
	case !ok:
		return ctx.writeOutput("undefined")
	case c.Raw && result.Kind() == models.String:
		return ctx.writeOutput(result.Str())
	}
	return ctx.writeOutput(ctx.Render.Value(result, ctx.Config.IndentString()))
}

// ToCSVCmd converts an array of objects to CSV
type ToCSVCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	JWCC  bool   `help:"Accept comments and trailing commas." name:"jwcc"`
}

func (c *ToCSVCmd) Run(ctx *Context) error {
	data, _, err := ctx.loadValue(c.Input, c.JWCC)
	if err != nil {
		return err
	}

	out, err := csvcodec.ToCSV(data,
		csvcodec.WithHeaderName(ctx.Config.HeaderName),
		csvcodec.WithSkip(ctx.Config.SkipColumn),
	)
	if err != nil {
		return err
	}
	return ctx.writeOutput(out)
}

// FromCSVCmd converts CSV to an array of objects
type FromCSVCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
}

func (c *FromCSVCmd) Run(ctx *Context) error {
	text, err := ctx.readInput(c.Input)
	if err != nil {
		return err
	}

	rows := csvcodec.FromCSV(text)
	ctx.Logger.Debug("decoded CSV", "rows", rows.Len())
	return ctx.writeOutput(ctx.Render.Value(rows, ctx.Config.IndentString()))
}

// TableCmd shows an array of objects as a table
type TableCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	JWCC  bool   `help:"Accept comments and trailing commas." name:"jwcc"`
}

func (c *TableCmd) Run(ctx *Context) error {
	data, _, err := ctx.loadValue(c.Input, c.JWCC)
	if err != nil {
		return err
	}

	td, err := analyzer.NewAnalyzerWithConfig(ctx.Config).Table(data)
	if err != nil {
		return err
	}
	return ctx.writeOutput(ctx.Render.Table(td))
}

// StatsCmd summarizes a document
type StatsCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	JWCC  bool   `help:"Accept comments and trailing commas." name:"jwcc"`
	JSON  bool   `help:"Print the statistics as JSON." name:"json"`
}

type stats struct {
	analyzer.Summary
	Columns []analyzer.ColumnProfile `json:"columns,omitempty"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	data, text, err := ctx.loadValue(c.Input, c.JWCC)
	if err != nil {
		return err
	}

	a := analyzer.NewAnalyzerWithConfig(ctx.Config)
	st := stats{Summary: a.Summarize(data, text)}
	if data.Kind() == models.Array {
		st.Columns, err = a.Profile(data)
		if err != nil {
			return err
		}
	}

	if c.JSON {
		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode statistics", err)
		}
		return ctx.writeOutput(string(out))
	}
	return ctx.writeOutput(ctx.Render.Stats(st.Summary, st.Columns))
}

// TreeCmd shows a document as an outline
type TreeCmd struct {
	Input string `arg:"" optional:"" help:"Input file. Reads stdin when omitted." type:"path"`
	JWCC  bool   `help:"Accept comments and trailing commas." name:"jwcc"`
}

func (c *TreeCmd) Run(ctx *Context) error {
	data, _, err := ctx.loadValue(c.Input, c.JWCC)
	if err != nil {
		return err
	}
	return ctx.writeOutput(ctx.Render.Tree(data))
}

func parseText(text string, jwcc bool) (models.Value, error) {
	if jwcc {
		return parser.ParseJWCC(text)
	}
	return parser.ParseString(text)
}
