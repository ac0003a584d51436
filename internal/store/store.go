package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/onzacore/distri-api/internal/models"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM productos WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves the full live catalog
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM productos ORDER BY id")
	return products, err
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM productos WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// CreateProduct inserts a new catalog product
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO productos (codigo_sku, nombre, categoria, precio_unitario, stock, imagen_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, fecha_creacion`

	return s.db.GetContext(ctx, p, query,
		p.SKU, p.Name, p.Category, p.UnitPrice, p.Stock, p.ImageURL)
}

// UpdateProduct updates a catalog product
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE productos SET codigo_sku = $1, nombre = $2, categoria = $3,
			precio_unitario = $4, stock = $5, imagen_url = $6
		 WHERE id = $7`,
		p.SKU, p.Name, p.Category, p.UnitPrice, p.Stock, p.ImageURL, p.ID)
	return err
}

// DeleteProduct removes a product from the catalog. Order line items keep
// their captured name and frozen price; the reconciler surfaces the dangling
// reference.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM productos WHERE id = $1", id)
	return err
}
