package evaluator

import (
	"context"

	"github.com/searchlab/recipebench/teststore"
)

// Run evaluates the given test cases sequentially in list order and
// aggregates the outcomes.
//
// A test whose evaluation errors (embedding or search failure) is recorded
// as a FAILED entry carrying the error message; the remaining tests still
// run. The summary's success rate counts only PASSED results.
func (e *Evaluator) Run(ctx context.Context, tests []teststore.TestCase) *RunReport {
	report := &RunReport{
		Results: make([]Result, 0, len(tests)),
	}

	for _, tc := range tests {
		result, err := e.Evaluate(ctx, tc)
		if err != nil {
			e.log.Error("test evaluation failed", err, map[string]interface{}{
				"test_id": tc.ID,
			})
			if e.metrics != nil {
				e.metrics.IncrementEvaluations(string(StatusFailed))
			}
			result = &Result{
				TestID:   tc.ID,
				TestName: tc.Name,
				Query:    tc.Query,
				Status:   StatusFailed,
				Message:  err.Error(),
			}
		}
		report.Results = append(report.Results, *result)
	}

	report.Summary = summarize(report.Results)
	return report
}

func summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for i := range results {
		switch results[i].Status {
		case StatusPassed:
			s.Passed++
		case StatusWarning:
			s.Warnings++
		case StatusFailed:
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}
