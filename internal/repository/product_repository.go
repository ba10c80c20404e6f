package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

// ProductRepository provides Postgres persistence for the marketplace catalog.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository constructs a ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProducts lists every catalog product.
func (r *ProductRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	const query = `SELECT id, name, description, gold_price, silver_price, bronze_price, in_stock, created_at FROM products ORDER BY created_at`
	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a product by id.
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const query = `SELECT id, name, description, gold_price, silver_price, bronze_price, in_stock, created_at FROM products WHERE id = $1 LIMIT 1`
	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// CreateProduct inserts a new catalog product.
func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO products (id, name, description, gold_price, silver_price, bronze_price, in_stock, created_at)
        VALUES (:id, :name, :description, :gold_price, :silver_price, :bronze_price, :in_stock, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces a catalog product.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	const query = `UPDATE products SET name = :name, description = :description, gold_price = :gold_price,
        silver_price = :silver_price, bronze_price = :bronze_price, in_stock = :in_stock WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(result, "update product")
}

// DeleteProduct removes a catalog product.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(result, "delete product")
}
