package catalog

import (
	"context"
	"sync"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
)

// MemCatalog is a thread-safe, insertion-ordered in-memory catalog
type MemCatalog struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]search.Document
}

// NewMemCatalog creates a new empty catalog
func NewMemCatalog() *MemCatalog {
	return &MemCatalog{
		order: make([]string, 0),
		docs:  make(map[string]search.Document),
	}
}

// Upsert adds a document or updates it in place, keeping its position
func (m *MemCatalog) Upsert(doc search.Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(doc)
	return nil
}

func (m *MemCatalog) set(doc search.Document) {
	if _, ok := m.docs[doc.ID]; !ok {
		m.order = append(m.order, doc.ID)
	}
	m.docs[doc.ID] = doc
}

// Delete removes a document from the catalog
func (m *MemCatalog) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get retrieves a document by ID
func (m *MemCatalog) Get(id string) (search.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	return doc, ok
}

// Replace swaps the catalog contents for docs.
// Every document is validated before anything changes; on error the
// catalog is left untouched. Later duplicates of an ID win.
func (m *MemCatalog) Replace(docs []search.Document) error {
	for _, doc := range docs {
		if err := Validate(doc); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = make([]string, 0, len(docs))
	m.docs = make(map[string]search.Document, len(docs))
	for _, doc := range docs {
		m.set(doc)
	}
	return nil
}

// Count returns the number of documents in the catalog
func (m *MemCatalog) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Snapshot returns a copy of all documents in insertion order
func (m *MemCatalog) Snapshot(ctx context.Context) ([]search.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.All(), nil
}

// All returns all documents in insertion order (copy)
func (m *MemCatalog) All() []search.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]search.Document, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.docs[id])
	}
	return result
}

// Range iterates over documents in insertion order
// The callback should return false to stop iteration
func (m *MemCatalog) Range(fn func(doc search.Document) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if !fn(m.docs[id]) {
			break
		}
	}
}

// Flush is a no-op for the in-memory catalog
func (m *MemCatalog) Flush() error {
	return nil
}

// Close is a no-op for the in-memory catalog
func (m *MemCatalog) Close() error {
	return nil
}
