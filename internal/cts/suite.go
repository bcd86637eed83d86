package cts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jacoelho/jsonpath/internal/document"
)

// ErrInvalidSuite indicates a suite file that decodes but does not have
// the expected shape.
var ErrInvalidSuite = errors.New("cts: invalid suite")

// Suite is a named list of conformance cases.
type Suite struct {
	Name  string
	Tests []Case
}

// Case is one conformance check. Document and Result are omitted when
// InvalidSelector is set. Result is the expected node list, in order.
type Case struct {
	Name            string
	Selector        string
	InvalidSelector bool
	Document        any
	Result          []any
	Focus           bool
}

// Focused reports whether any case in the suite is focused.
func (s Suite) Focused() bool {
	for _, c := range s.Tests {
		if c.Focus {
			return true
		}
	}
	return false
}

// Load reads a suite file. The format follows the file extension and
// falls back to sniffing the content.
func Load(path string) (Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return Suite{}, fmt.Errorf("open suite: %w", err)
	}
	defer f.Close()

	suite, err := Decode(f, document.FormatFromPath(path))
	if err != nil {
		return Suite{}, fmt.Errorf("load suite %s: %w", path, err)
	}
	suite.Name = filepath.Base(path)
	return suite, nil
}

// Decode reads a suite of the form {"tests": [...]} from r.
func Decode(r io.Reader, format document.Format) (Suite, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Suite{}, fmt.Errorf("read suite: %w", err)
	}

	v, err := document.Decode(data, format)
	if err != nil {
		return Suite{}, err
	}

	root, ok := v.(*document.Object)
	if !ok {
		return Suite{}, fmt.Errorf("%w: top level value must be an object", ErrInvalidSuite)
	}

	raw, ok := root.Get("tests")
	if !ok {
		return Suite{}, fmt.Errorf("%w: missing \"tests\"", ErrInvalidSuite)
	}
	items, ok := raw.([]any)
	if !ok {
		return Suite{}, fmt.Errorf("%w: \"tests\" must be an array", ErrInvalidSuite)
	}

	suite := Suite{Tests: make([]Case, 0, len(items))}
	for i, item := range items {
		c, err := decodeCase(item)
		if err != nil {
			return Suite{}, fmt.Errorf("%w: tests[%d]: %v", ErrInvalidSuite, i, err)
		}
		suite.Tests = append(suite.Tests, c)
	}
	return suite, nil
}

func decodeCase(item any) (Case, error) {
	obj, ok := item.(*document.Object)
	if !ok {
		return Case{}, errors.New("case must be an object")
	}

	var (
		c   Case
		err error
	)
	if c.Name, err = stringField(obj, "name"); err != nil {
		return Case{}, err
	}
	if c.Selector, err = stringField(obj, "selector"); err != nil {
		return Case{}, fmt.Errorf("%s: %w", c.Name, err)
	}
	if c.InvalidSelector, err = boolField(obj, "invalid_selector"); err != nil {
		return Case{}, fmt.Errorf("%s: %w", c.Name, err)
	}
	if c.Focus, err = boolField(obj, "focus"); err != nil {
		return Case{}, fmt.Errorf("%s: %w", c.Name, err)
	}

	if c.InvalidSelector {
		return c, nil
	}

	c.Document, _ = obj.Get("document")

	result, ok := obj.Get("result")
	if !ok {
		return Case{}, fmt.Errorf("%s: missing \"result\"", c.Name)
	}
	if c.Result, ok = result.([]any); !ok {
		return Case{}, fmt.Errorf("%s: \"result\" must be an array", c.Name)
	}
	return c, nil
}

func stringField(obj *document.Object, key string) (string, error) {
	v, ok := obj.Get(key)
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string", key)
	}
	return s, nil
}

func boolField(obj *document.Object, key string) (bool, error) {
	v, ok := obj.Get(key)
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%q must be a boolean", key)
	}
	return b, nil
}
