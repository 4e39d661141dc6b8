package teststore

import "encoding/json"

// Default assertion thresholds applied when a stored test omits them.
const (
	DefaultMaxRank  = 3
	DefaultMinScore = 0.3
)

// TestCase is one persisted search regression test. Field names on the wire
// are snake_case; unknown fields in stored documents are dropped on load.
type TestCase struct {
	// ID uniquely identifies the test, e.g. "test_20250117_153012".
	ID string `json:"id"`

	// Name is the human-readable title shown in reports.
	Name string `json:"name"`

	// Query is the search text to embed and execute.
	Query string `json:"query"`

	// Description explains what the test protects against.
	Description string `json:"description,omitempty"`

	// ExpectedResultID is the single expected document id (legacy form).
	ExpectedResultID string `json:"expected_result_id,omitempty"`

	// ExpectedResultIDs lists acceptable document ids; any match counts.
	ExpectedResultIDs []string `json:"expected_result_ids,omitempty"`

	// MaxRank is the worst acceptable 1-based rank before a WARNING.
	MaxRank int `json:"max_rank"`

	// MinScore is the lowest acceptable similarity score before a WARNING.
	MinScore float64 `json:"min_score"`

	// SearchMode overrides the retrieval mode (dense, sparse, hybrid).
	// Empty means the evaluator default.
	SearchMode string `json:"search_mode,omitempty"`

	// Collection overrides the target collection. Empty means the default.
	Collection string `json:"collection,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UnmarshalJSON applies the default thresholds for absent fields, so tests
// written by hand without max_rank or min_score behave the same as tests
// created through the API.
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	type alias TestCase
	aux := struct {
		MaxRank  *int     `json:"max_rank"`
		MinScore *float64 `json:"min_score"`
		*alias
	}{alias: (*alias)(tc)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.MaxRank == nil {
		tc.MaxRank = DefaultMaxRank
	} else {
		tc.MaxRank = *aux.MaxRank
	}
	if aux.MinScore == nil {
		tc.MinScore = DefaultMinScore
	} else {
		tc.MinScore = *aux.MinScore
	}
	return nil
}

// ExpectedIDs returns the union of the single and plural expected-id fields,
// de-duplicated, preserving order (singular first). An empty result means
// the test only asserts that the search returns something.
func (tc *TestCase) ExpectedIDs() []string {
	if tc.ExpectedResultID == "" && len(tc.ExpectedResultIDs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tc.ExpectedResultIDs)+1)
	ids := make([]string, 0, len(tc.ExpectedResultIDs)+1)

	if tc.ExpectedResultID != "" {
		seen[tc.ExpectedResultID] = struct{}{}
		ids = append(ids, tc.ExpectedResultID)
	}
	for _, id := range tc.ExpectedResultIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Document is the versioned on-disk format wrapping all test cases.
type Document struct {
	Version   string     `json:"version"`
	UpdatedAt string     `json:"updated_at"`
	Tests     []TestCase `json:"tests"`
}

// documentVersion is written into every saved document.
const documentVersion = "1.0"
