package ledger

import (
	"context"

	"github.com/tit-academy/crm-api/internal/models"
	appErrors "github.com/tit-academy/crm-api/pkg/errors"
)

// GetProducts lists all marketplace products.
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	return products, nil
}

// GetProduct returns the product with the given id.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &product, nil
}

// CreateProduct inserts a new product.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == "" {
		product.ID = newID()
	}
	product.CreatedAt = stamp(product.CreatedAt)
	s.products[product.ID] = *product
	return nil
}

// UpdateProduct replaces an existing product record.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return appErrors.ErrNotFound
	}
	s.products[product.ID] = *product
	return nil
}

// DeleteProduct removes a product. Purchase history keeps its product
// reference.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return appErrors.ErrNotFound
	}
	delete(s.products, id)
	return nil
}
