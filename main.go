package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonsmith/internal/config"
	"github.com/mcncl/jsonsmith/internal/csvcodec"
	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/models"
	"github.com/mcncl/jsonsmith/internal/parser"
	"github.com/mcncl/jsonsmith/internal/report"
)

// CLI defines the command-line interface
type CLI struct {
	Config  string           `help:"Path to config file. Defaults to the nearest .jsonsmith.yml." short:"c" type:"path"`
	Output  string           `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Color   string           `help:"Color output: auto, always or never."`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Validate    ValidateCmd    `cmd:"" help:"Check that input is valid JSON and explain what is wrong."`
	Repair      RepairCmd      `cmd:"" help:"Fix common mistakes such as trailing commas and single quotes."`
	Format      FormatCmd      `cmd:"" help:"Pretty-print JSON."`
	Minify      MinifyCmd      `cmd:"" help:"Remove insignificant whitespace."`
	Standardize StandardizeCmd `cmd:"" help:"Convert JSON with comments and trailing commas to standard JSON."`
	Deserialize DeserializeCmd `cmd:"" help:"Unescape a JSON document stored inside a string literal."`
	Diff        DiffCmd        `cmd:"" help:"List the differences between two documents."`
	Query       QueryCmd       `cmd:"" help:"Select a value with a path expression."`
	ToCSV       ToCSVCmd       `cmd:"" name:"to-csv" help:"Convert an array of objects to CSV."`
	FromCSV     FromCSVCmd     `cmd:"" name:"from-csv" help:"Convert CSV to an array of objects."`
	Table       TableCmd       `cmd:"" help:"Show an array of objects as a table."`
	Stats       StatsCmd       `cmd:"" help:"Summarize a document and profile its columns."`
	Tree        TreeCmd        `cmd:"" help:"Show a document as an outline."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Output string
	Config *config.Config
	Logger *slog.Logger
	Render *report.Renderer
}

// Version information
const (
	Version = "0.1.0"
)

// exitError ends a command that completed but must still report failure
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute parses args, runs the selected command and returns the process
// exit status
func execute(args []string, in io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jsonsmith"),
		kong.Description("A toolkit for checking, fixing and reshaping JSON text"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": Version},
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	kctx, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "jsonsmith: %v\n", err)
		fmt.Fprintf(stderr, "\nFor help, run: jsonsmith --help\n")
		return 1
	}

	ctx, err := newContext(&cli, in, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}

	err = kctx.Run(ctx)
	if err == nil {
		return 0
	}

	var exit exitError
	if stderrors.As(err, &exit) {
		return exit.code
	}
	ctx.Logger.Debug("command failed", "command", kctx.Command(), "error", err)
	fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
	return 1
}

// newContext loads configuration and builds the logger and renderer
func newContext(cli *CLI, in io.Reader, stdout, stderr io.Writer) (*Context, error) {
	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	overrides := &config.Config{
		Format: config.FormatConfig{Color: cli.Color},
		Dev:    config.DevConfig{Debug: cli.Debug},
	}
	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}

	level := slog.LevelInfo
	if cfg.Dev.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	toTerminal := cli.Output == "" && stdout == io.Writer(os.Stdout)
	return &Context{
		In:     in,
		Out:    stdout,
		Err:    stderr,
		Output: cli.Output,
		Config: cfg,
		Logger: logger,
		Render: report.New(report.UseColor(cfg.Format.Color, toTerminal)),
	}, nil
}

// readInput returns the text at path, or stdin when path is empty or "-"
func (ctx *Context) readInput(path string) (string, error) {
	if path != "" && path != "-" {
		ctx.Logger.Debug("reading input", "path", path)
		return parser.ReadFile(path)
	}

	if f, ok := ctx.In.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}
		// Terminal is interactive (not piped)
		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			return ctx.readInteractiveInput()
		}
	}

	data, err := io.ReadAll(ctx.In)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	ctx.Logger.Debug("read stdin", "bytes", len(data))
	return string(data), nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func (ctx *Context) readInteractiveInput() (string, error) {
	fmt.Fprintln(ctx.Err, "jsonsmith interactive mode")
	fmt.Fprintln(ctx.Err, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.In)
	var b strings.Builder
	for {
		line, err := reader.ReadString('\n')
		b.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	if b.Len() == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	fmt.Fprintln(ctx.Err)
	return b.String(), nil
}

// loadValue reads and parses the document at path. Files ending in .csv
// are decoded as CSV.
func (ctx *Context) loadValue(path string, jwcc bool) (models.Value, string, error) {
	text, err := ctx.readInput(path)
	if err != nil {
		return models.Value{}, "", err
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csvcodec.FromCSV(text), text, nil
	}

	v, err := parseText(text, jwcc || ctx.Config.Validate.JWCC)
	return v, text, err
}

// indent returns the indent unit for n spaces, or the configured one when
// n is negative
func (ctx *Context) indent(n int) string {
	if n < 0 {
		return ctx.Config.IndentString()
	}
	cfg := *ctx.Config
	cfg.Format.Indent = n
	return cfg.IndentString()
}

// writeOutput writes text to the output file or stdout
func (ctx *Context) writeOutput(text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if ctx.Output != "" {
		err := os.WriteFile(ctx.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", ctx.Output), err)
		}
		fmt.Fprintf(ctx.Err, "Output written to %s\n", ctx.Output)
		return nil
	}

	if _, err := io.WriteString(ctx.Out, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
