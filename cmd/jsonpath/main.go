package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/jacoelho/jsonpath"
	"github.com/jacoelho/jsonpath/internal/config"
	"github.com/jacoelho/jsonpath/internal/document"
	"github.com/jacoelho/jsonpath/internal/exit"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, exitResult := config.ParseQuery(args)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	logger := cfg.Logger(stderr)

	path, err := jsonpath.Parse(cfg.Selector, cfg.Options()...)
	if err != nil {
		exitResult = exit.FromError(err)
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}
	logger.Debug("selector compiled", "selector", cfg.Selector, "expr", path.Expr().String())

	if cfg.ValidateOnly {
		fmt.Fprintln(stdout, path.Expr().String())
		return 0
	}

	doc, err := readDocument(cfg, stdin)
	if err != nil {
		exitResult = exit.FromError(err)
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}
	logger.Debug("document loaded", "source", cfg.File, "format", cfg.InputFormat)

	nodes := path.Find(doc)
	logger.Debug("selector evaluated", "nodes", len(nodes))

	if err := writeNodes(stdout, nodes, cfg); err != nil {
		exitResult = exit.FromError(fmt.Errorf("failed to write output: %w", err))
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	return 0
}

func readDocument(cfg *config.Query, stdin io.Reader) (any, error) {
	if cfg.File != config.StdinPath {
		return document.ReadFile(cfg.File, cfg.InputFormat)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return document.Decode(data, cfg.InputFormat)
}

func writeNodes(w io.Writer, nodes jsonpath.NodeList, cfg *config.Query) error {
	switch cfg.Output {
	case config.OutputYAML:
		out, err := yaml.Marshal(document.ToYAML([]any(nodes)))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		if !cfg.Compact {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(nodes)
	}
}
