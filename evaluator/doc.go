// Package evaluator runs search regression tests and classifies their
// outcomes.
//
// A test case names a query and, usually, the document ids expected among
// the results. Evaluate embeds the query with the active provider, executes
// the search in the test's mode (hybrid by default, degrading to dense when
// the provider yields no sparse vectors), and grades the outcome as PASSED,
// WARNING, or FAILED against the test's rank and score thresholds.
//
// Run processes a list of tests sequentially and aggregates a summary with
// a success rate; a single failing evaluation never aborts the batch.
package evaluator
