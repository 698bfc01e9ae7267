package repositories

import (
	"context"

	"vitrine/internal/models"
	"vitrine/internal/store"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, []RejectedRecord, error)
	Add(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, product models.Product) (*models.Product, error)
	Remove(ctx context.Context, id string) error
}

// StoreProductRepository is a ProductRepository over a store.Client.
type StoreProductRepository struct {
	client store.Client
}

// NewStoreProductRepository creates a new instance of StoreProductRepository.
func NewStoreProductRepository(client store.Client) *StoreProductRepository {
	return &StoreProductRepository{client: client}
}

// List returns every product ordered by name.
func (r *StoreProductRepository) List(ctx context.Context) ([]models.Product, []RejectedRecord, error) {
	recs, err := r.client.List(ctx, store.Products, store.ListOptions{OrderBy: "name"})
	if err != nil {
		return nil, nil, translate("load products", err)
	}
	products, rejected := decodeAll[models.Product](recs)
	return products, rejected, nil
}

// Add creates a product; the store assigns its identifier.
func (r *StoreProductRepository) Add(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = ""
	return write("add product", product, func(rec store.Record) (store.Record, error) {
		return r.client.Create(ctx, store.Products, rec)
	})
}

// Update overwrites the editable fields of an existing product.
func (r *StoreProductRepository) Update(ctx context.Context, product models.Product) (*models.Product, error) {
	return write("update product", product, func(rec store.Record) (store.Record, error) {
		return r.client.Update(ctx, store.Products, product.ID, rec)
	})
}

// Remove deletes a product by its ID.
func (r *StoreProductRepository) Remove(ctx context.Context, id string) error {
	return translate("delete product", r.client.Delete(ctx, store.Products, id))
}
