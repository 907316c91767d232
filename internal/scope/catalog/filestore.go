package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
)

// CatalogFile is the name of the JSONL file NewFileStore keeps in its directory
const CatalogFile = "catalog.jsonl"

// FileStore is a MemCatalog persisted as JSONL on disk.
// Writes are held in memory until Flush or Close.
type FileStore struct {
	path string
	mem  *MemCatalog

	mu       sync.Mutex
	modified bool
	closed   bool
}

// NewFileStore opens the store kept as CatalogFile in dataDir
func NewFileStore(dataDir string) (*FileStore, error) {
	return NewFileStoreAt(filepath.Join(dataDir, CatalogFile))
}

// NewFileStoreAt opens the store backed by the file at path, loading
// existing data if present. The parent directory is created if needed.
func NewFileStoreAt(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{
		path: path,
		mem:  NewMemCatalog(),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	return s, nil
}

// Path returns the catalog file location
func (s *FileStore) Path() string {
	return s.path
}

// Upsert adds or updates a document
func (s *FileStore) Upsert(doc search.Document) error {
	return s.write(func() error { return s.mem.Upsert(doc) })
}

// Delete removes a document
func (s *FileStore) Delete(id string) error {
	return s.write(func() error { return s.mem.Delete(id) })
}

// Replace swaps the whole collection
func (s *FileStore) Replace(docs []search.Document) error {
	return s.write(func() error { return s.mem.Replace(docs) })
}

func (s *FileStore) write(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := fn(); err != nil {
		return err
	}
	s.modified = true
	return nil
}

// Get retrieves a document by ID
func (s *FileStore) Get(id string) (search.Document, bool) {
	return s.mem.Get(id)
}

// Count returns the number of documents in the store
func (s *FileStore) Count() int {
	return s.mem.Count()
}

// Snapshot returns a copy of all documents in insertion order
func (s *FileStore) Snapshot(ctx context.Context) ([]search.Document, error) {
	return s.mem.Snapshot(ctx)
}

// Flush writes the store to disk if it changed since the last flush.
// The file is replaced atomically.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	if !s.modified {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := EncodeDocuments(tmp, s.mem.All()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}

	s.modified = false
	return nil
}

// Close flushes and closes the store
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	err := s.flushLocked()
	s.closed = true
	return err
}

// load reads the catalog file from disk
func (s *FileStore) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	docs, err := DecodeDocuments(f)
	if err != nil {
		return err
	}
	return s.mem.Replace(docs)
}
