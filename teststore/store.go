package teststore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store persists test cases to a single versioned JSON document.
//
// Absence and duplication are reported through boolean returns rather than
// errors; only I/O and encoding failures surface as errors. All methods are
// safe for concurrent use within one process. Every mutation rewrites the
// whole document through a temp-file rename, so readers never observe a
// partially written file.
type Store struct {
	mu   sync.Mutex
	path string
	doc  Document
}

// NewStore opens the store at cfg.Path, loading the existing document when
// the file is present. A missing file is not an error; the store starts
// empty and the file is created on the first mutation.
func NewStore(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		path: cfg.Path,
		doc:  Document{Version: documentVersion},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the document from disk. Unknown JSON fields are dropped.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("teststore: failed to read %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("teststore: failed to parse %s: %w", s.path, err)
	}

	if doc.Version == "" {
		doc.Version = documentVersion
	}
	s.doc = doc
	return nil
}

// save writes the whole document atomically: marshal, write to a temp file
// in the same directory, then rename over the target.
func (s *Store) save() error {
	s.doc.Version = documentVersion
	s.doc.UpdatedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("teststore: failed to encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tests-*.json")
	if err != nil {
		return fmt.Errorf("teststore: failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("teststore: failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("teststore: failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("teststore: failed to replace %s: %w", s.path, err)
	}
	return nil
}

// List returns a copy of all test cases in stored order.
func (s *Store) List() []TestCase {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]TestCase, len(s.doc.Tests))
	copy(out, s.doc.Tests)
	return out
}

// Get returns the test with the given id, or nil when absent.
func (s *Store) Get(id string) *TestCase {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Tests {
		if s.doc.Tests[i].ID == id {
			tc := s.doc.Tests[i]
			return &tc
		}
	}
	return nil
}

// Add appends a test case and persists the document. When the id is empty a
// timestamp-based one is generated; a supplied created_at is kept so
// imported tests retain their history. Returns false without modifying the
// store when the id already exists.
func (s *Store) Add(tc TestCase) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tc.ID == "" {
		tc.ID = s.generateID()
	}

	for i := range s.doc.Tests {
		if s.doc.Tests[i].ID == tc.ID {
			return false, nil
		}
	}

	if tc.MaxRank == 0 {
		tc.MaxRank = DefaultMaxRank
	}
	if tc.MinScore == 0 {
		tc.MinScore = DefaultMinScore
	}

	now := time.Now().Format(time.RFC3339)
	if tc.CreatedAt == "" {
		tc.CreatedAt = now
	}
	tc.UpdatedAt = now

	s.doc.Tests = append(s.doc.Tests, tc)
	if err := s.save(); err != nil {
		s.doc.Tests = s.doc.Tests[:len(s.doc.Tests)-1]
		return false, err
	}
	return true, nil
}

// Update applies a partial update to the test with the given id and
// persists the document. Only recognized field names are applied; unknown
// keys are ignored silently. Returns false when the id does not exist.
func (s *Store) Update(id string, fields map[string]any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.doc.Tests {
		if s.doc.Tests[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	prev := s.doc.Tests[idx]
	tc := &s.doc.Tests[idx]

	for key, value := range fields {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				tc.Name = v
			}
		case "query":
			if v, ok := value.(string); ok {
				tc.Query = v
			}
		case "description":
			if v, ok := value.(string); ok {
				tc.Description = v
			}
		case "expected_result_id":
			if v, ok := value.(string); ok {
				tc.ExpectedResultID = v
			}
		case "expected_result_ids":
			tc.ExpectedResultIDs = toStringSlice(value)
		case "max_rank":
			if v, ok := toInt(value); ok {
				tc.MaxRank = v
			}
		case "min_score":
			if v, ok := toFloat(value); ok {
				tc.MinScore = v
			}
		case "search_mode":
			if v, ok := value.(string); ok {
				tc.SearchMode = v
			}
		case "collection":
			if v, ok := value.(string); ok {
				tc.Collection = v
			}
		}
	}

	tc.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := s.save(); err != nil {
		s.doc.Tests[idx] = prev
		return false, err
	}
	return true, nil
}

// Delete removes the test with the given id and persists the document.
// Returns false when the id does not exist.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.doc.Tests {
		if s.doc.Tests[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	prev := make([]TestCase, len(s.doc.Tests))
	copy(prev, s.doc.Tests)

	s.doc.Tests = append(s.doc.Tests[:idx], s.doc.Tests[idx+1:]...)
	if err := s.save(); err != nil {
		s.doc.Tests = prev
		return false, err
	}
	return true, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// generateID builds a timestamp id, appending a counter when a test created
// in the same second already took the name. Caller holds the lock.
func (s *Store) generateID() string {
	base := "test_" + time.Now().Format("20060102_150405")
	id := base
	for n := 2; s.hasID(id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

func (s *Store) hasID(id string) bool {
	for i := range s.doc.Tests {
		if s.doc.Tests[i].ID == id {
			return true
		}
	}
	return false
}

func toStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
