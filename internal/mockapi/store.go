// Package mockapi is a json-server compatible REST data server backed by a
// single JSON document. Every top-level array in the document is exposed as
// a collection.
package mockapi

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"mini-admin/internal/domain"
)

// Record is one JSON object of a collection.
type Record = map[string]any

// Store holds the document in memory and writes every mutation back to
// its file unless it is read-only or memory-backed.
type Store struct {
	mu       sync.RWMutex
	doc      map[string]any
	path     string
	readOnly bool
}

// Open loads the JSON document at path.
func Open(path string, readOnly bool) (*Store, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is operator-controlled
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Store{doc: doc, path: path, readOnly: readOnly}, nil
}

// NewMemoryStore wraps doc without persistence. doc is round-tripped
// through JSON so values have the same types as a loaded file.
func NewMemoryStore(doc any) (*Store, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &Store{doc: out}, nil
}

// ReadOnly reports whether mutations are rejected.
func (s *Store) ReadOnly() bool { return s.readOnly }

// Collections returns the names of all collections, sorted.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.doc))
	for k, v := range s.doc {
		if _, ok := v.([]any); ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.doc).(map[string]any)
}

// List returns a copy of every record in collection.
func (s *Store) List(collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if rec, ok := it.(map[string]any); ok {
			out = append(out, deepCopy(rec).(map[string]any))
		}
	}
	return out, nil
}

// Get returns the record whose id matches.
func (s *Store) Get(collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, domain.ErrNotFound("%s/%s not found", collection, id)
	}
	return deepCopy(items[idx]).(map[string]any), nil
}

// Insert appends rec. Without an id the record gets max(numeric id)+1;
// an id that already exists is a conflict.
func (s *Store) Insert(collection string, rec Record) (Record, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	rec = deepCopy(rec).(map[string]any)
	if id, ok := rec["id"]; !ok || id == nil || id == "" {
		rec["id"] = float64(maxNumericID(items) + 1)
	} else if indexOf(items, formatValue(id)) >= 0 {
		return nil, domain.ErrConflict("%s/%s already exists", collection, formatValue(id))
	}

	s.doc[collection] = append(items, rec)
	if err := s.persistLocked(); err != nil {
		s.doc[collection] = items
		return nil, err
	}
	return deepCopy(rec).(map[string]any), nil
}

// Replace swaps the record for rec, keeping the stored id.
func (s *Store) Replace(collection, id string, rec Record) (Record, error) {
	return s.mutate(collection, id, func(current Record) Record {
		next := deepCopy(rec).(map[string]any)
		next["id"] = current["id"]
		return next
	})
}

// Patch merges rec's top-level fields into the stored record. The id
// cannot change.
func (s *Store) Patch(collection, id string, rec Record) (Record, error) {
	return s.mutate(collection, id, func(current Record) Record {
		for k, v := range rec {
			if k == "id" {
				continue
			}
			current[k] = deepCopy(v)
		}
		return current
	})
}

// Delete removes exactly the record whose id matches. Records in other
// collections that reference it are left alone.
func (s *Store) Delete(collection, id string) error {
	if err := s.writable(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.collection(collection)
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return domain.ErrNotFound("%s/%s not found", collection, id)
	}
	next := make([]any, 0, len(items)-1)
	next = append(next, items[:idx]...)
	next = append(next, items[idx+1:]...)
	s.doc[collection] = next
	if err := s.persistLocked(); err != nil {
		s.doc[collection] = items
		return err
	}
	return nil
}

func (s *Store) mutate(collection, id string, apply func(Record) Record) (Record, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, domain.ErrNotFound("%s/%s not found", collection, id)
	}
	current, _ := items[idx].(map[string]any)
	next := apply(deepCopy(current).(map[string]any))
	items[idx] = next
	if err := s.persistLocked(); err != nil {
		items[idx] = current
		return nil, err
	}
	return deepCopy(next).(map[string]any), nil
}

func (s *Store) writable() error {
	if s.readOnly {
		return errReadOnly
	}
	return nil
}

func (s *Store) collection(name string) ([]any, error) {
	items, ok := s.doc[name].([]any)
	if !ok {
		return nil, domain.ErrNotFound("collection %q not found", name)
	}
	return items, nil
}

// persistLocked writes the document atomically (temp file then rename).
// Caller holds s.mu and restores the in-memory document when it fails.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func indexOf(items []any, id string) int {
	for i, it := range items {
		rec, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if formatValue(rec["id"]) == id {
			return i
		}
	}
	return -1
}

func maxNumericID(items []any) int64 {
	var highest int64
	for _, it := range items {
		rec, ok := it.(map[string]any)
		if !ok {
			continue
		}
		switch v := rec["id"].(type) {
		case float64:
			if v > float64(highest) && v == math.Trunc(v) {
				highest = int64(v)
			}
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest
}

// formatValue renders a decoded JSON value the way query strings spell it.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		raw, _ := json.Marshal(x)
		return string(raw)
	}
}

func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return x
	}
}
