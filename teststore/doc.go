// Package teststore persists search regression test cases to a versioned
// JSON document on disk.
//
// The document format is stable and meant to live in version control next
// to the project:
//
//	{
//	  "version": "1.0",
//	  "updated_at": "2025-01-17T15:30:12Z",
//	  "tests": [
//	    {
//	      "id": "test_20250117_153012",
//	      "name": "fried potatoes by literal name",
//	      "query": "жареная картошка",
//	      "expected_result_id": "potato_1",
//	      "max_rank": 3,
//	      "min_score": 0.3,
//	      "search_mode": "hybrid"
//	    }
//	  ]
//	}
//
// Absent max_rank and min_score default to 3 and 0.3 on load. Unknown
// fields in stored documents are dropped.
//
// Duplicate ids on Add and missing ids on Update/Delete/Get are reported
// through boolean or nil returns, not errors; errors are reserved for I/O
// and encoding failures. Every mutation rewrites the document through a
// write-to-temp-then-rename, so a crash mid-save never corrupts the file.
package teststore
