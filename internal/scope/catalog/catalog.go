// Package catalog provides the document collections the search engine scans.
//
// Stores hand out snapshots: each call to Snapshot returns a fresh copy in
// insertion order, so a search over one snapshot is unaffected by writes
// that happen while it runs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
)

// Error values for catalog operations
var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidDocument = errors.New("invalid document")
	ErrClosed          = errors.New("catalog closed")
)

// Source supplies a read-only snapshot of catalog documents
type Source interface {
	Snapshot(ctx context.Context) ([]search.Document, error)
}

// Store is a writable catalog
// MemCatalog (memory only) and FileStore (JSONL-backed) implement it
type Store interface {
	Source

	// Upsert adds a document or replaces the one with the same ID in place
	Upsert(doc search.Document) error

	// Delete removes a document, returning ErrNotFound if absent
	Delete(id string) error

	// Get retrieves a document by ID
	Get(id string) (search.Document, bool)

	// Replace swaps the whole collection for docs
	Replace(docs []search.Document) error

	// Count returns the number of documents
	Count() int

	// Flush persists any pending changes
	Flush() error

	// Close flushes and closes the store
	Close() error
}

var _ Store = (*MemCatalog)(nil)
var _ Store = (*FileStore)(nil)

// Validate checks the fields every stored document needs
func Validate(doc search.Document) error {
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidDocument)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDocument)
	}
	return nil
}
