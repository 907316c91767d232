// Package streamlite provides connectors that stream catalog changes from a
// source into the store the search API serves.
package streamlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/rs/zerolog"
)

// Error values for connector lifecycle
var (
	ErrAlreadyStarted = errors.New("connector already started")
	ErrNotStarted     = errors.New("connector not started")
)

// Connector represents a data source connector
type Connector interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
}

// Status reports what a connector has done so far
type Status struct {
	Name      string
	StartedAt time.Time
	LastSync  time.Time
	LastError error
	Syncs     int
	Docs      int
	Skipped   int
}

// CatalogSync periodically replaces the target store's contents with a
// snapshot of the source. A failed sync leaves the target untouched and is
// retried on the next tick.
type CatalogSync struct {
	name     string
	source   catalog.Source
	target   catalog.Store
	interval time.Duration
	logger   zerolog.Logger

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
	done   chan struct{}
}

var _ Connector = (*CatalogSync)(nil)

// NewCatalogSync creates a sync connector. A non-positive interval defaults
// to five minutes.
func NewCatalogSync(name string, source catalog.Source, target catalog.Store, interval time.Duration, logger zerolog.Logger) *CatalogSync {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CatalogSync{
		name:     name,
		source:   source,
		target:   target,
		interval: interval,
		logger:   logger.With().Str("connector", name).Logger(),
		status:   Status{Name: name},
	}
}

// Name returns the connector name
func (c *CatalogSync) Name() string {
	return c.name
}

// Start runs one sync immediately, then one per interval until ctx is
// canceled or Stop is called
func (c *CatalogSync) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.status.StartedAt = time.Now()

	go c.run(ctx, c.done)
	return nil
}

func (c *CatalogSync) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if _, err := c.SyncOnce(ctx); err != nil && ctx.Err() == nil {
			c.logger.Warn().Err(err).Msg("catalog sync failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop cancels the sync loop and waits for it to exit
func (c *CatalogSync) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}
	cancel()
	<-done
	return nil
}

// SyncOnce copies one snapshot from source to target and returns the
// number of documents written. Documents failing validation are skipped.
func (c *CatalogSync) SyncOnce(ctx context.Context) (int, error) {
	start := time.Now()

	docs, err := c.source.Snapshot(ctx)
	if err != nil {
		c.recordFailure(err)
		return 0, fmt.Errorf("failed to read source: %w", err)
	}

	valid := make([]search.Document, 0, len(docs))
	for _, doc := range docs {
		if err := catalog.Validate(doc); err != nil {
			c.logger.Debug().Err(err).Str("product_id", doc.ID).Msg("skipping invalid document")
			continue
		}
		valid = append(valid, doc)
	}
	skipped := len(docs) - len(valid)

	if err := c.target.Replace(valid); err != nil {
		c.recordFailure(err)
		return 0, fmt.Errorf("failed to replace catalog: %w", err)
	}
	if err := c.target.Flush(); err != nil {
		c.recordFailure(err)
		return 0, fmt.Errorf("failed to flush catalog: %w", err)
	}

	c.mu.Lock()
	c.status.LastSync = time.Now()
	c.status.LastError = nil
	c.status.Syncs++
	c.status.Docs = len(valid)
	c.status.Skipped = skipped
	c.mu.Unlock()

	c.logger.Info().
		Int("docs", len(valid)).
		Int("skipped", skipped).
		Dur("took", time.Since(start)).
		Msg("catalog synced")

	return len(valid), nil
}

func (c *CatalogSync) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.LastError = err
}

// Status returns a copy of the connector status
func (c *CatalogSync) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
