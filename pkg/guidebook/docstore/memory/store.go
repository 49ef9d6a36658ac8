package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// Store implements docstore.Store with in-memory maps. It is the test fake
// and the default backend for local development.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]docstore.Document
	now         func() time.Time
}

// New creates a new in-memory document store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]docstore.Document),
		now:         time.Now,
	}
}

// NewWithClock creates a store with a fixed clock, for tests that assert
// timestamps.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	// Return a copy to prevent external modifications
	return copyDocument(doc), nil
}

func (s *Store) Query(ctx context.Context, collection string, where ...docstore.Where) ([]docstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []docstore.Document
	for _, doc := range s.collections[collection] {
		match := true
		for _, w := range where {
			if w.Op != "" && w.Op != "==" {
				return nil, docstore.ErrUnsupportedOp
			}
			if doc[w.Field] != w.Value {
				match = false
				break
			}
		}
		if match {
			result = append(result, copyDocument(doc))
		}
	}
	return result, nil
}

func (s *Store) Create(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docCopy := copyDocument(doc)
	if docCopy == nil {
		docCopy = docstore.Document{}
	}
	id, _ := docCopy["id"].(string)
	if id == "" {
		id = uuid.NewString()
		docCopy["id"] = id
	}
	now := s.now().UTC().Format(time.RFC3339Nano)
	docCopy["created_at"] = now
	docCopy["updated_at"] = now

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]docstore.Document)
	}
	s.collections[collection][id] = docCopy
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range fields {
		if k == "id" || k == "created_at" {
			continue
		}
		doc[k] = copyValue(v)
	}
	doc["updated_at"] = s.now().UTC().Format(time.RFC3339Nano)
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return docstore.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

// copyDocument deep-copies a document. Documents hold JSON-shaped values, so
// nested maps and slices must be copied too or returned documents would alias
// stored state.
func copyDocument(doc docstore.Document) docstore.Document {
	if doc == nil {
		return nil
	}
	out := make(docstore.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case docstore.Document:
		return copyDocument(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}
