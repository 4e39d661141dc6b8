package evaluator

import (
	"fmt"
	"io"
)

// statusMarks decorate the per-test report lines.
var statusMarks = map[Status]string{
	StatusPassed:  "✅",
	StatusWarning: "⚠️",
	StatusFailed:  "❌",
}

// WriteText renders a human-readable run report, one line per test plus a
// summary block. Used by the CLI.
func (r *RunReport) WriteText(w io.Writer) {
	for i := range r.Results {
		res := &r.Results[i]
		fmt.Fprintf(w, "%s [%s] %s\n", statusMarks[res.Status], res.Status, res.TestName)
		fmt.Fprintf(w, "   query: %q (mode=%s)\n", res.Query, res.Mode)
		if res.Message != "" {
			fmt.Fprintf(w, "   %s\n", res.Message)
		}
		for _, hit := range res.TopHits {
			name := hit.Name
			if name == "" {
				name = hit.ID
			}
			fmt.Fprintf(w, "     %d. %s (%.3f)\n", hit.Rank, name, hit.Score)
		}
	}

	s := r.Summary
	fmt.Fprintf(w, "\nTotal: %d  Passed: %d  Warnings: %d  Failed: %d\n",
		s.Total, s.Passed, s.Warnings, s.Failed)
	fmt.Fprintf(w, "Success rate: %.1f%%\n", s.SuccessRate)
}

// Failed reports whether any test in the run ended FAILED.
func (r *RunReport) Failed() bool {
	return r.Summary.Failed > 0
}
