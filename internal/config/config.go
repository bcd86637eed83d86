package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jacoelho/jsonpath"
	"github.com/jacoelho/jsonpath/internal/cts"
	"github.com/jacoelho/jsonpath/internal/document"
	"github.com/jacoelho/jsonpath/internal/exit"
)

// StdinPath names standard input as the document source.
const StdinPath = "-"

var (
	ErrNoArguments          = errors.New("no arguments provided")
	ErrNoSelector           = errors.New("no selector specified")
	ErrTooManyArguments     = errors.New("too many arguments")
	ErrNoSuiteFiles         = errors.New("no suite files specified")
	ErrUnsupportedOutput    = errors.New("output format must be json or yaml")
	ErrUnsupportedReport    = errors.New("report format must be text or json")
	ErrValidateWithDocument = errors.New("--validate does not read a document")
)

// OutputFormat selects how matched nodes are printed.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Query is the configuration of the jsonpath command.
type Query struct {
	Selector     string
	File         string // StdinPath reads standard input
	InputFormat  document.Format
	Output       OutputFormat
	Compact      bool
	ValidateOnly bool
	Descendants  bool
	Debug        bool
}

// Options returns the parse options selected on the command line.
func (q *Query) Options() []jsonpath.Option {
	return options(q.Descendants)
}

// Logger returns a text logger writing to w at the selected level.
func (q *Query) Logger(w io.Writer) *slog.Logger {
	return newLogger(w, q.Debug)
}

// Validate validates the configuration and returns an error if invalid.
func (q *Query) Validate() error {
	if q.Selector == "" {
		return ErrNoSelector
	}

	switch q.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w, got: %s", ErrUnsupportedOutput, q.Output)
	}

	if q.ValidateOnly && q.File != StdinPath {
		return ErrValidateWithDocument
	}

	if q.File != StdinPath {
		if _, err := os.Stat(q.File); err != nil {
			return fmt.Errorf("document %s not found: %w", q.File, err)
		}
	}

	return nil
}

// ParseQuery parses the jsonpath command line.
// If parsing fails or help is requested, returns nil config and exit result.
func ParseQuery(args []string) (*Query, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, QueryUsage())
	}

	fs := newFlagSet(args[0])

	var (
		output      = fs.String("output", string(OutputJSON), "Output format: json or yaml")
		inputFormat = fs.String("input-format", string(document.FormatAuto), "Document format: auto, json, hujson or yaml")
		compact     = fs.Bool("compact", false, "Print JSON output on a single line")
		validate    = fs.Bool("validate", false, "Only check that the selector compiles")
		descendants = fs.Bool("descendants", false, "Enable descendant segments (..name)")
		debug       = fs.Bool("debug", false, "Enable debug logging on stderr")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(QueryUsage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, QueryUsage())
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoSelector, QueryUsage())
	}
	if len(positional) > 2 {
		return nil, exit.Errorf("Error: %v: %s\n\n%s", ErrTooManyArguments, strings.Join(positional[2:], " "), QueryUsage())
	}

	format, err := document.ParseFormat(*inputFormat)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, QueryUsage())
	}

	query := &Query{
		Selector:     positional[0],
		File:         StdinPath,
		InputFormat:  format,
		Output:       OutputFormat(strings.ToLower(*output)),
		Compact:      *compact,
		ValidateOnly: *validate,
		Descendants:  *descendants,
		Debug:        *debug,
	}
	if len(positional) == 2 {
		query.File = positional[1]
	}

	if err := query.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, QueryUsage())
	}

	return query, nil
}

// Suite is the configuration of the jsonpath-cts command.
type Suite struct {
	Files       []string
	Report      cts.Format
	CrossCheck  bool
	Descendants bool
	Debug       bool
}

// Options returns the parse options selected on the command line.
func (s *Suite) Options() []jsonpath.Option {
	return options(s.Descendants)
}

// Logger returns a text logger writing to w at the selected level.
func (s *Suite) Logger(w io.Writer) *slog.Logger {
	return newLogger(w, s.Debug)
}

// Validate validates the configuration and returns an error if invalid.
func (s *Suite) Validate() error {
	if len(s.Files) == 0 {
		return ErrNoSuiteFiles
	}

	switch s.Report {
	case cts.FormatText, cts.FormatJSON:
	default:
		return fmt.Errorf("%w, got: %s", ErrUnsupportedReport, s.Report)
	}

	for _, file := range s.Files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("suite file %s not found: %w", file, err)
		}
	}

	return nil
}

// ParseSuite parses the jsonpath-cts command line.
// If parsing fails or help is requested, returns nil config and exit result.
func ParseSuite(args []string) (*Suite, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, SuiteUsage())
	}

	fs := newFlagSet(args[0])

	var (
		report      = fs.String("report", string(cts.FormatText), "Report format: text or json")
		crossCheck  = fs.Bool("crosscheck", false, "Compare every case with an RFC 9535 engine")
		descendants = fs.Bool("descendants", false, "Enable descendant segments (..name)")
		debug       = fs.Bool("debug", false, "Log every case on stderr")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(SuiteUsage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, SuiteUsage())
	}

	suite := &Suite{
		Files:       fs.Args(),
		Report:      cts.Format(strings.ToLower(*report)),
		CrossCheck:  *crossCheck,
		Descendants: *descendants,
		Debug:       *debug,
	}

	if err := suite.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, SuiteUsage())
	}

	return suite, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// usage and errors are reported through exit results
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	return fs
}

func options(descendants bool) []jsonpath.Option {
	if descendants {
		return []jsonpath.Option{jsonpath.WithDescendants()}
	}
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// QueryUsage returns a usage string for the jsonpath command.
func QueryUsage() string {
	return `jsonpath - evaluate a JSONPath selector against a document

Usage: jsonpath [options] <selector> [file]

Reads the document from standard input when no file is given.

Options:
  --output FORMAT         Output format: json or yaml (default: json)
  --input-format FORMAT   Document format: auto, json, hujson or yaml (default: auto)
  --compact               Print JSON output on a single line
  --validate              Only check that the selector compiles
  --descendants           Enable descendant segments (..name, ..*, ..[...])
  --debug                 Enable debug logging on stderr
  -h, --help              Show this help message

Examples:
  jsonpath '$.store.book.*.author' store.json
  jsonpath --output yaml '$.items[::-1]' data.yaml
  cat data.json | jsonpath '$.a[0,-1]'
  jsonpath --validate "$['a','b'][1:]"`
}

// SuiteUsage returns a usage string for the jsonpath-cts command.
func SuiteUsage() string {
	return `jsonpath-cts - run JSONPath conformance suites

Usage: jsonpath-cts [options] <suite1> [suite2] ...

Suites are JSON, HuJSON or YAML files of the form {"tests": [...]}.
The run fails when any case fails or when cases are still focused.

Options:
  --report FORMAT         Report format: text or json (default: text)
  --crosscheck            Compare every case with an RFC 9535 engine
  --descendants           Enable descendant segments (..name, ..*, ..[...])
  --debug                 Log every case on stderr
  -h, --help              Show this help message

Examples:
  jsonpath-cts cts.json
  jsonpath-cts --report json --crosscheck cts.json extra.yaml`
}
