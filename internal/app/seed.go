package app

import (
	"context"
	"fmt"

	"vitrine/internal/models"
	"vitrine/internal/repositories"

	"go.uber.org/zap"
)

// SeedDemoData populates an empty store with the demo catalog. A store that
// already holds products is left alone.
func SeedDemoData(ctx context.Context, repos repositories.Set, logger *zap.Logger) error {
	existing, _, err := repos.Products.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Store already has data, skipping demo seed", zap.Int("products", len(existing)))
		return nil
	}

	// Tab ids are derived on add; demo products are pointed at the new ids.
	tabIDs := make(map[string]string, len(models.DefaultTabs))
	for _, tab := range models.DefaultTabs {
		if tab.IsHome() {
			continue
		}
		created, err := repos.Tabs.Add(ctx, tab)
		if err != nil {
			return fmt.Errorf("failed to seed tab %s: %w", tab.Title, err)
		}
		tabIDs[tab.ID] = created.ID
		logger.Info("Seeded tab", zap.String("id", created.ID), zap.String("title", created.Title))
	}

	for _, p := range models.DefaultProducts {
		p.TabID = tabIDs[p.TabID]
		created, err := repos.Products.Add(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
		logger.Info("Seeded product", zap.String("id", created.ID), zap.String("name", created.Name))
	}

	for _, t := range models.DefaultTestimonials {
		if _, err := repos.Testimonials.Add(ctx, t); err != nil {
			return fmt.Errorf("failed to seed testimonial by %s: %w", t.Author, err)
		}
	}
	if _, err := repos.Promotion.Save(ctx, models.DefaultPromotion); err != nil {
		return err
	}
	if _, err := repos.SiteContent.Save(ctx, models.DefaultSiteContent); err != nil {
		return err
	}
	if _, err := repos.Theme.Save(ctx, models.DefaultPalette); err != nil {
		return err
	}
	return nil
}
