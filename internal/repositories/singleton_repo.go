package repositories

import (
	"context"

	"vitrine/internal/models"
	"vitrine/internal/store"

	"github.com/bwmarrin/snowflake"
)

// PromotionRepository defines the interface for the promotion singleton.
type PromotionRepository interface {
	Get(ctx context.Context) (*models.Promotion, error)
	Save(ctx context.Context, promotion models.Promotion) (*models.Promotion, error)
}

// SiteContentRepository defines the interface for the site content singleton.
type SiteContentRepository interface {
	Get(ctx context.Context) (*models.SiteContent, error)
	Save(ctx context.Context, content models.SiteContent) (*models.SiteContent, error)
}

// ThemeRepository defines the interface for the current theme singleton.
type ThemeRepository interface {
	Get(ctx context.Context) (*models.ColorPalette, error)
	Save(ctx context.Context, palette models.ColorPalette) (*models.ColorPalette, error)
}

// StorePromotionRepository is a PromotionRepository over a store.Client.
type StorePromotionRepository struct {
	client store.Client
}

// NewStorePromotionRepository creates a new instance of StorePromotionRepository.
func NewStorePromotionRepository(client store.Client) *StorePromotionRepository {
	return &StorePromotionRepository{client: client}
}

// Get returns the stored promotion, or nil when none was saved yet.
func (r *StorePromotionRepository) Get(ctx context.Context) (*models.Promotion, error) {
	rec, err := r.client.GetSingleton(ctx, store.Promotion)
	return getSingleton[models.Promotion]("load promotion", rec, err)
}

// Save upserts the promotion under its fixed identifier.
func (r *StorePromotionRepository) Save(ctx context.Context, promotion models.Promotion) (*models.Promotion, error) {
	promotion.ID = models.PromotionID
	return write("update promotion", promotion, func(rec store.Record) (store.Record, error) {
		return r.client.Upsert(ctx, store.Promotion, rec)
	})
}

// StoreSiteContentRepository is a SiteContentRepository over a store.Client.
type StoreSiteContentRepository struct {
	client store.Client
}

// NewStoreSiteContentRepository creates a new instance of StoreSiteContentRepository.
func NewStoreSiteContentRepository(client store.Client) *StoreSiteContentRepository {
	return &StoreSiteContentRepository{client: client}
}

// Get returns the stored site content, or nil when none was saved yet.
func (r *StoreSiteContentRepository) Get(ctx context.Context) (*models.SiteContent, error) {
	rec, err := r.client.GetSingleton(ctx, store.SiteContent)
	return getSingleton[models.SiteContent]("load site content", rec, err)
}

// Save upserts the site content under its fixed identifier.
func (r *StoreSiteContentRepository) Save(ctx context.Context, content models.SiteContent) (*models.SiteContent, error) {
	content.ID = models.SiteContentID
	return write("update site content", content, func(rec store.Record) (store.Record, error) {
		return r.client.Upsert(ctx, store.SiteContent, rec)
	})
}

// themeRow is the stored shape of the current theme.
type themeRow struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Colors models.Colors `json:"colors"`
}

// StoreThemeRepository is a ThemeRepository over a store.Client.
type StoreThemeRepository struct {
	client store.Client
}

// NewStoreThemeRepository creates a new instance of StoreThemeRepository.
func NewStoreThemeRepository(client store.Client) *StoreThemeRepository {
	return &StoreThemeRepository{client: client}
}

// Get returns the current palette, or nil when none was saved yet.
func (r *StoreThemeRepository) Get(ctx context.Context) (*models.ColorPalette, error) {
	rec, err := r.client.GetSingleton(ctx, store.Theme)
	row, err := getSingleton[themeRow]("load theme", rec, err)
	if err != nil || row == nil {
		return nil, err
	}
	return &models.ColorPalette{Name: row.Name, Colors: row.Colors}, nil
}

// Save writes the palette to the single current-theme row, whatever its
// display name, so saving twice never creates a second row.
func (r *StoreThemeRepository) Save(ctx context.Context, palette models.ColorPalette) (*models.ColorPalette, error) {
	row := themeRow{ID: models.ThemeID, Name: palette.Name, Colors: palette.Colors}
	saved, err := write("update theme", row, func(rec store.Record) (store.Record, error) {
		return r.client.Upsert(ctx, store.Theme, rec)
	})
	if err != nil {
		return nil, err
	}
	return &models.ColorPalette{Name: saved.Name, Colors: saved.Colors}, nil
}

// Set bundles one repository per entity kind.
type Set struct {
	Products     ProductRepository
	Tabs         TabRepository
	Testimonials TestimonialRepository
	Promotion    PromotionRepository
	SiteContent  SiteContentRepository
	Theme        ThemeRepository
}

// NewStoreSet wires every store-backed repository to client.
func NewStoreSet(client store.Client, node *snowflake.Node) Set {
	return Set{
		Products:     NewStoreProductRepository(client),
		Tabs:         NewStoreTabRepository(client, node),
		Testimonials: NewStoreTestimonialRepository(client),
		Promotion:    NewStorePromotionRepository(client),
		SiteContent:  NewStoreSiteContentRepository(client),
		Theme:        NewStoreThemeRepository(client),
	}
}
