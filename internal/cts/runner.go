package cts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/jacoelho/jsonpath"
	"github.com/jacoelho/jsonpath/internal/document"
	reference "github.com/theory/jsonpath"
)

// Runner executes conformance suites.
type Runner struct {
	// Logger receives per-case debug records. Nil discards them.
	Logger *slog.Logger

	// Options are applied when compiling every selector.
	Options []jsonpath.Option

	// CrossCheck evaluates each case with an RFC 9535 engine as well and
	// records disagreements as divergences.
	CrossCheck bool
}

// Run executes every case of suite. When any case is focused only focused
// cases run and the summary is marked Focused.
func (r *Runner) Run(suite Suite) Summary {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	summary := Summary{
		RunID:   uuid.NewString(),
		Suite:   suite.Name,
		Focused: suite.Focused(),
	}
	logger = logger.With("run_id", summary.RunID, "suite", suite.Name)

	for _, c := range suite.Tests {
		if summary.Focused && !c.Focus {
			summary.Add(CaseResult{Name: c.Name, Selector: c.Selector, Outcome: OutcomeSkipped})
			continue
		}

		result := r.runCase(c)
		if r.CrossCheck {
			result.Divergence = crossCheck(c)
		}

		logger.Debug("case finished",
			"name", c.Name,
			"selector", c.Selector,
			"outcome", result.Outcome,
			"message", result.Message,
		)
		summary.Add(result)
	}

	logger.Info("suite finished",
		"total", summary.Total,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"divergent", summary.Divergent,
	)
	return summary
}

func (r *Runner) runCase(c Case) (result CaseResult) {
	result = CaseResult{Name: c.Name, Selector: c.Selector, Outcome: OutcomeFailed}

	defer func() {
		if v := recover(); v != nil {
			result.Outcome = OutcomeFailed
			result.Message = fmt.Sprintf("panic: %v", v)
		}
	}()

	path, err := jsonpath.Parse(c.Selector, r.Options...)
	switch {
	case c.InvalidSelector && err == nil:
		result.Message = fmt.Sprintf("parsing %s should have failed", c.Selector)
		return result
	case c.InvalidSelector:
		result.Outcome = OutcomePassed
		return result
	case err != nil:
		result.Message = fmt.Sprintf("parsing %s should have succeeded but failed: %v", c.Selector, err)
		return result
	}

	got := path.Find(c.Document)
	if !document.Equal([]any(got), c.Result) {
		result.Message = fmt.Sprintf("incorrect result, expected: %s, got: %s", render(c.Result), render(got))
		return result
	}

	result.Outcome = OutcomePassed
	return result
}

// crossCheck compares acceptance and the result multiset with the
// reference engine. Order is ignored since the reference engine walks
// plain maps without a defined member order.
func crossCheck(c Case) (divergence string) {
	defer func() {
		if v := recover(); v != nil {
			divergence = fmt.Sprintf("reference engine panicked: %v", v)
		}
	}()

	path, err := reference.Parse(c.Selector)
	switch {
	case c.InvalidSelector && err == nil:
		return "reference engine accepts the selector"
	case c.InvalidSelector:
		return ""
	case err != nil:
		return fmt.Sprintf("reference engine rejects the selector: %v", err)
	}

	got := path.Select(document.Plain(c.Document))
	if !slices.Equal(canonical(got), canonical(c.Result)) {
		return fmt.Sprintf("reference engine returned %s", render(document.Plain([]any(got))))
	}
	return ""
}

// canonical renders each node as JSON and sorts the renderings, giving a
// comparable multiset.
func canonical(nodes []any) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = render(document.Plain(n))
	}
	slices.Sort(out)
	return out
}

func render(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
