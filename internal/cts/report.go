package cts

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format determines how summaries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Outcome classifies a single case.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// CaseResult is the outcome of one case. Divergence is informational and
// never affects Outcome.
type CaseResult struct {
	Name       string  `json:"name"`
	Selector   string  `json:"selector"`
	Outcome    Outcome `json:"outcome"`
	Message    string  `json:"message,omitempty"`
	Divergence string  `json:"divergence,omitempty"`
}

// Summary aggregates the outcomes of one suite run.
type Summary struct {
	RunID     string       `json:"run_id"`
	Suite     string       `json:"suite"`
	Total     int          `json:"total"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Divergent int          `json:"divergent"`
	Focused   bool         `json:"focused"`
	Cases     []CaseResult `json:"cases,omitempty"`
}

// Add records one case result into the summary.
func (s *Summary) Add(result CaseResult) {
	s.Total++
	s.Cases = append(s.Cases, result)

	switch result.Outcome {
	case OutcomePassed:
		s.Passed++
	case OutcomeFailed:
		s.Failed++
	case OutcomeSkipped:
		s.Skipped++
	}
	if result.Divergence != "" {
		s.Divergent++
	}
}

// OK reports whether the run counts as a success. A focused run never
// does, so focus cannot be left behind by accident.
func (s Summary) OK() bool {
	return s.Failed == 0 && !s.Focused
}

// Write prints the summary in the requested format.
func (s Summary) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case FormatText, "":
		writef := func(format string, args ...any) error {
			_, err := fmt.Fprintf(w, format, args...)
			return err
		}

		if err := writef("Conformance summary: %s (run %s)\n", s.Suite, s.RunID); err != nil {
			return err
		}
		if err := writef("  total cases: %d\n", s.Total); err != nil {
			return err
		}
		if err := writef("  passed: %d\n", s.Passed); err != nil {
			return err
		}
		if err := writef("  failed: %d\n", s.Failed); err != nil {
			return err
		}
		if err := writef("  skipped: %d\n", s.Skipped); err != nil {
			return err
		}
		if s.Divergent > 0 {
			if err := writef("  divergent: %d\n", s.Divergent); err != nil {
				return err
			}
		}

		if s.Failed > 0 {
			if err := writef("\nFailures:\n"); err != nil {
				return err
			}
			for _, c := range s.Cases {
				if c.Outcome != OutcomeFailed {
					continue
				}
				if err := writef("  - %s (%s): %s\n", c.Name, c.Selector, c.Message); err != nil {
					return err
				}
			}
		}

		if s.Divergent > 0 {
			if err := writef("\nDivergences from reference engine:\n"); err != nil {
				return err
			}
			for _, c := range s.Cases {
				if c.Divergence == "" {
					continue
				}
				if err := writef("  - %s (%s): %s\n", c.Name, c.Selector, c.Divergence); err != nil {
					return err
				}
			}
		}

		if s.Focused {
			if err := writef("\ntestcase(s) still focused\n"); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}
