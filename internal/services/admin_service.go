package services

import (
	"context"
	"strings"

	"vitrine/internal/models"

	"github.com/go-playground/validator/v10"
)

// Mutator is the write surface of the Synchronizer.
type Mutator interface {
	Snapshot() models.Snapshot
	AddProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AddTab(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error)
	UpdateTab(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error)
	DeleteTab(ctx context.Context, id string) error
	AddTestimonial(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error
	SavePromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error)
	SaveSiteContent(ctx context.Context, content models.SiteContent) (*models.SiteContent, error)
	SavePalette(ctx context.Context, palette models.ColorPalette) (*models.ColorPalette, error)
}

// AdminService runs the local checks of every admin action before handing
// it to the Synchronizer. Nothing that fails here reaches the store.
type AdminService struct {
	sync     Mutator
	validate *validator.Validate
}

// NewAdminService creates a new AdminService.
func NewAdminService(sync Mutator) *AdminService {
	return &AdminService{sync: sync, validate: validator.New()}
}

// AddProduct validates and creates a product.
func (s *AdminService) AddProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = ""
	if err := s.checkProduct(&product); err != nil {
		return nil, err
	}
	return s.sync.AddProduct(ctx, product)
}

// UpdateProduct validates and updates the product with the given id.
func (s *AdminService) UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	product.ID = id
	if err := s.checkProduct(&product); err != nil {
		return nil, err
	}
	return s.sync.UpdateProduct(ctx, product)
}

// DeleteProduct deletes a product.
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	return s.sync.DeleteProduct(ctx, id)
}

func (s *AdminService) checkProduct(product *models.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if err := s.validate.Struct(product); err != nil {
		return newValidationError(err)
	}
	tab, ok := s.sync.Snapshot().TabByID(product.TabID)
	if !ok || tab.IsHome() {
		return fieldError("TabID", "Field 'TabID' must reference an existing category")
	}
	return nil
}

// AddTab validates and creates a tab.
func (s *AdminService) AddTab(ctx context.Context, tab models.ThemeTab) (*models.ThemeTab, error) {
	tab.ID = ""
	tab.Title = strings.TrimSpace(tab.Title)
	if err := s.validate.Struct(tab); err != nil {
		return nil, newValidationError(err)
	}
	return s.sync.AddTab(ctx, tab)
}

// UpdateTab validates and updates a tab. The home tab is read-only.
func (s *AdminService) UpdateTab(ctx context.Context, id string, tab models.ThemeTab) (*models.ThemeTab, error) {
	tab.ID = id
	if tab.IsHome() {
		return nil, ErrHomeTabProtected
	}
	tab.Title = strings.TrimSpace(tab.Title)
	if err := s.validate.Struct(tab); err != nil {
		return nil, newValidationError(err)
	}
	return s.sync.UpdateTab(ctx, tab)
}

// DeleteTab deletes a tab that no product references.
func (s *AdminService) DeleteTab(ctx context.Context, id string) error {
	if id == models.HomeTabID {
		return ErrHomeTabProtected
	}
	if len(s.sync.Snapshot().ProductsInTab(id)) > 0 {
		return ErrDeletionConflict
	}
	return s.sync.DeleteTab(ctx, id)
}

// AddTestimonial validates and creates a testimonial.
func (s *AdminService) AddTestimonial(ctx context.Context, testimonial models.Testimonial) (*models.Testimonial, error) {
	testimonial.ID = ""
	if err := s.checkTestimonial(&testimonial); err != nil {
		return nil, err
	}
	return s.sync.AddTestimonial(ctx, testimonial)
}

// UpdateTestimonial validates and updates a testimonial.
func (s *AdminService) UpdateTestimonial(ctx context.Context, id string, testimonial models.Testimonial) (*models.Testimonial, error) {
	testimonial.ID = id
	if err := s.checkTestimonial(&testimonial); err != nil {
		return nil, err
	}
	return s.sync.UpdateTestimonial(ctx, testimonial)
}

// DeleteTestimonial deletes a testimonial.
func (s *AdminService) DeleteTestimonial(ctx context.Context, id string) error {
	return s.sync.DeleteTestimonial(ctx, id)
}

func (s *AdminService) checkTestimonial(t *models.Testimonial) error {
	t.Author = strings.TrimSpace(t.Author)
	t.Text = strings.TrimSpace(t.Text)
	if err := s.validate.Struct(t); err != nil {
		return newValidationError(err)
	}
	return nil
}

// SavePromotion validates and stores the promotion.
func (s *AdminService) SavePromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error) {
	promotion.Title = strings.TrimSpace(promotion.Title)
	if err := s.validate.Struct(promotion); err != nil {
		return nil, newValidationError(err)
	}
	return s.sync.SavePromotion(ctx, promotion)
}

// SaveSiteContent validates and stores the site content.
func (s *AdminService) SaveSiteContent(ctx context.Context, content models.SiteContent) (*models.SiteContent, error) {
	content.CompanyName = strings.TrimSpace(content.CompanyName)
	if err := s.validate.Struct(content); err != nil {
		return nil, newValidationError(err)
	}
	return s.sync.SaveSiteContent(ctx, content)
}

// SavePalette validates and stores a custom palette as the current theme.
func (s *AdminService) SavePalette(ctx context.Context, palette models.ColorPalette) (*models.ColorPalette, error) {
	if err := s.validate.Struct(palette); err != nil {
		return nil, newValidationError(err)
	}
	return s.sync.SavePalette(ctx, palette)
}

// SelectPreset stores one of the preset palettes as the current theme.
func (s *AdminService) SelectPreset(ctx context.Context, name string) (*models.ColorPalette, error) {
	palette, ok := models.PresetPalette(name)
	if !ok {
		return nil, fieldError("Name", "Field 'Name' must name a preset palette")
	}
	return s.sync.SavePalette(ctx, palette)
}
