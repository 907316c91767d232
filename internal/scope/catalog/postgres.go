package catalog

import (
	"context"
	"fmt"

	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// productsQuery reads the searchable projection of the products table
const productsQuery = `
SELECT id::text,
       name,
       COALESCE(brand, ''),
       COALESCE(category, ''),
       COALESCE(description, ''),
       COALESCE(image_url, '')
FROM products
ORDER BY id`

// PostgresSource loads catalog snapshots from a Postgres products table
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to Postgres and verifies the connection
func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSource{pool: pool}, nil
}

// Snapshot reads every product, ordered by id
func (p *PostgresSource) Snapshot(ctx context.Context) ([]search.Document, error) {
	rows, err := p.pool.Query(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	docs, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return docs, nil
}

// Count returns the number of rows in the products table
func (p *PostgresSource) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Close closes the connection pool
func (p *PostgresSource) Close() {
	p.pool.Close()
}

func scanProduct(row pgx.CollectableRow) (search.Document, error) {
	var rec Record
	var id string
	if err := row.Scan(&id, &rec.Name, &rec.Brand, &rec.Category, &rec.Description, &rec.ImageURL); err != nil {
		return search.Document{}, err
	}
	rec.ID = ID(id)
	return rec.Document(), nil
}
