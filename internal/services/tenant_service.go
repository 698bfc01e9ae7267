package services

import (
	"context"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/repositories"
)

// TenantService resolves white-label tenant branding by slug.
type TenantService struct {
	repo repositories.ClientConfigRepository
}

// NewTenantService creates a new TenantService.
func NewTenantService(repo repositories.ClientConfigRepository) *TenantService {
	return &TenantService{repo: repo}
}

// Resolve returns the branding for slug. An empty slug is the master
// domain and resolves to the default configuration.
func (s *TenantService) Resolve(ctx context.Context, slug string) (*models.ClientConfig, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		cfg := models.DefaultClientConfig
		return &cfg, nil
	}
	cfg, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrTenantNotFound
	}
	return cfg, nil
}
