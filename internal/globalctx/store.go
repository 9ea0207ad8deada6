package globalctx

import (
	"sync"

	"casebook/internal/casedata"
)

// CasesDirKey is the reserved key under which the loader records the
// absolute path of the case directory being loaded.
const CasesDirKey = "_cases_dir"

// Store is a run-scoped key/value store.
type Store struct {
	mu     sync.RWMutex
	values *casedata.Map
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: casedata.NewMap()}
}

// Set inserts or overwrites a single entry.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.Set(key, value)
}

// Get returns the value stored under key, or nil when absent.
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Get(key)
}

// Lookup returns the value stored under key and whether it was present.
func (s *Store) Lookup(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Lookup(key)
}

// GetString returns the value under key if it is a string.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.Lookup(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Merge copies every entry of values into the store. Existing keys are
// overwritten, keys absent from values are left untouched.
func (s *Store) Merge(values *casedata.Map) {
	if values.Len() == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.Merge(values)
}

// Snapshot returns a deep copy of the current contents.
func (s *Store) Snapshot() *casedata.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Clone()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Len()
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = casedata.NewMap()
}
