package cts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacoelho/jsonpath/internal/document"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file      string
		wantCases int
		focused   bool
	}{
		{file: "cts.json", wantCases: 36},
		{file: "cts.yaml", wantCases: 3},
		{file: "focused.hujson", wantCases: 2, focused: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			suite, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if suite.Name != tt.file {
				t.Errorf("Name = %q, want %q", suite.Name, tt.file)
			}
			if len(suite.Tests) != tt.wantCases {
				t.Errorf("len(Tests) = %d, want %d", len(suite.Tests), tt.wantCases)
			}
			if suite.Focused() != tt.focused {
				t.Errorf("Focused() = %t, want %t", suite.Focused(), tt.focused)
			}
		})
	}
}

func TestDecodeCase(t *testing.T) {
	t.Parallel()

	input := `{"tests": [
		{"name": "a", "selector": "$.x", "document": {"x": [1]}, "result": [[1]]},
		{"name": "b", "selector": "$[", "invalid_selector": true, "focus": false}
	]}`

	suite, err := Decode(strings.NewReader(input), document.FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	first := suite.Tests[0]
	if first.Name != "a" || first.Selector != "$.x" || first.InvalidSelector {
		t.Errorf("first case = %+v", first)
	}
	if !document.Equal(first.Document, map[string]any{"x": []any{1}}) {
		t.Errorf("Document = %v", first.Document)
	}
	if !document.Equal(first.Result, []any{[]any{1}}) {
		t.Errorf("Result = %v", first.Result)
	}

	second := suite.Tests[1]
	if !second.InvalidSelector || second.Document != nil || second.Result != nil {
		t.Errorf("second case = %+v", second)
	}
}

func TestDecodeInvalidSuite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "top_level_array", input: `[]`},
		{name: "missing_tests", input: `{}`},
		{name: "tests_not_array", input: `{"tests": {}}`},
		{name: "case_not_object", input: `{"tests": [1]}`},
		{name: "missing_name", input: `{"tests": [{"selector": "$", "result": []}]}`},
		{name: "missing_selector", input: `{"tests": [{"name": "x", "result": []}]}`},
		{name: "selector_not_string", input: `{"tests": [{"name": "x", "selector": 1, "result": []}]}`},
		{name: "focus_not_bool", input: `{"tests": [{"name": "x", "selector": "$", "result": [], "focus": "yes"}]}`},
		{name: "missing_result", input: `{"tests": [{"name": "x", "selector": "$", "document": 1}]}`},
		{name: "result_not_array", input: `{"tests": [{"name": "x", "selector": "$", "document": 1, "result": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tt.input), document.FormatJSON)
			if !errors.Is(err, ErrInvalidSuite) {
				t.Errorf("Decode(%s) error = %v, want ErrInvalidSuite", tt.input, err)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"tests": [`), document.FormatJSON)
	if !errors.Is(err, document.ErrMalformed) {
		t.Errorf("Decode() error = %v, want document.ErrMalformed", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
