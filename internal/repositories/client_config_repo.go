package repositories

import (
	"context"

	"vitrine/internal/models"
	"vitrine/internal/store"
)

// ClientConfigRepository defines the interface for tenant branding lookups.
type ClientConfigRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.ClientConfig, error)
}

// StoreClientConfigRepository is a ClientConfigRepository over a store.Client.
type StoreClientConfigRepository struct {
	client store.Client
}

// NewStoreClientConfigRepository creates a new instance of StoreClientConfigRepository.
func NewStoreClientConfigRepository(client store.Client) *StoreClientConfigRepository {
	return &StoreClientConfigRepository{client: client}
}

// GetBySlug returns the tenant with the given slug, or nil when none matches.
func (r *StoreClientConfigRepository) GetBySlug(ctx context.Context, slug string) (*models.ClientConfig, error) {
	recs, err := r.client.List(ctx, store.Clients, store.ListOptions{})
	if err != nil {
		return nil, translate("load client", err)
	}
	clients, _ := decodeAll[models.ClientConfig](recs)
	for i := range clients {
		if clients[i].Slug == slug {
			return &clients[i], nil
		}
	}
	return nil, nil
}
