package evaluator

// Status classifies the outcome of a single test evaluation.
type Status string

const (
	// StatusPassed means the expectation held within the thresholds.
	StatusPassed Status = "PASSED"

	// StatusWarning means an expected document was found but violated a
	// rank or score threshold.
	StatusWarning Status = "WARNING"

	// StatusFailed means no expected document appeared in the result
	// window, or the evaluation itself errored.
	StatusFailed Status = "FAILED"
)

// HitSummary is a compact view of one search hit for reports and the
// dashboard.
type HitSummary struct {
	Rank  int     `json:"rank"`
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float32 `json:"score"`
}

// Result is the outcome of evaluating one test case. Derived and ephemeral;
// never persisted.
type Result struct {
	TestID   string `json:"test_id"`
	TestName string `json:"test_name"`
	Query    string `json:"query"`
	Status   Status `json:"status"`

	// Rank is the 1-based position of the matched document, 0 when no
	// expected document was found.
	Rank int `json:"rank"`

	// Score is the similarity score of the matched document.
	Score float32 `json:"score"`

	// FoundID is the expected document id that matched, if any.
	FoundID string `json:"found_id,omitempty"`

	// Mode is the search mode actually executed, after fallback.
	Mode string `json:"mode"`

	Message string `json:"message,omitempty"`

	// TopHits holds the first hits of the search window for inspection.
	TopHits []HitSummary `json:"top_hits,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Warnings    int     `json:"warnings"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// RunReport is the full outcome of a batch run: per-test results in input
// order plus the aggregate summary.
type RunReport struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}
