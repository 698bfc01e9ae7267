package services

import (
	"context"
	"fmt"

	"vitrine/internal/models"
	"vitrine/internal/repositories"
	"vitrine/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RejectedRecord is a fetched row excluded from the authoritative set.
type RejectedRecord = repositories.RejectedRecord

// Diagnostics is carried next to a successful load. It never fails it.
type Diagnostics struct {
	RawTestimonials      []store.Record   `json:"rawTestimonials"`
	RejectedTestimonials []RejectedRecord `json:"rejectedTestimonials"`
	RejectedProducts     []RejectedRecord `json:"rejectedProducts"`
	RejectedTabs         []RejectedRecord `json:"rejectedTabs"`
}

// Rejected reports how many rows were left out across all collections.
func (d Diagnostics) Rejected() int {
	return len(d.RejectedTestimonials) + len(d.RejectedProducts) + len(d.RejectedTabs)
}

func copyRejected(items []RejectedRecord) []RejectedRecord {
	return append([]RejectedRecord{}, items...)
}

// LoadResult is the outcome of LoadAll: a consistent snapshot and the
// diagnostics gathered while building it. Tabs are returned as stored.
type LoadResult struct {
	Snapshot    models.Snapshot
	Diagnostics Diagnostics
}

// SnapshotLoader produces a complete snapshot from the store.
type SnapshotLoader interface {
	LoadAll(ctx context.Context) (*LoadResult, error)
}

// Loader fetches all storefront collections concurrently.
type Loader struct {
	repos  repositories.Set
	logger *zap.Logger
}

// NewLoader creates a new Loader.
func NewLoader(repos repositories.Set, logger *zap.Logger) *Loader {
	return &Loader{repos: repos, logger: logger}
}

// LoadAll issues one request per collection in parallel and waits for all
// of them. If any request fails the whole load fails and no partial
// snapshot is returned.
func (l *Loader) LoadAll(ctx context.Context) (*LoadResult, error) {
	var (
		g            errgroup.Group
		products     []models.Product
		badProducts  []RejectedRecord
		tabs         []models.ThemeTab
		badTabs      []RejectedRecord
		testimonials []store.Record
		promotion    *models.Promotion
		siteContent  *models.SiteContent
		palette      *models.ColorPalette
	)

	g.Go(func() (err error) {
		products, badProducts, err = l.repos.Products.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		promotion, err = l.repos.Promotion.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		tabs, badTabs, err = l.repos.Tabs.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		testimonials, err = l.repos.Testimonials.ListRaw(ctx)
		return err
	})
	g.Go(func() (err error) {
		siteContent, err = l.repos.SiteContent.Get(ctx)
		return err
	})
	g.Go(func() (err error) {
		palette, err = l.repos.Theme.Get(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load storefront data: %w", err)
	}

	valid, rejected := FilterTestimonials(testimonials)
	l.warnRejected("testimonial", rejected)
	l.warnRejected("product", badProducts)
	l.warnRejected("tab", badTabs)

	result := &LoadResult{
		Snapshot: models.Snapshot{
			Products:       nonNil(products),
			Tabs:           nonNil(tabs),
			Testimonials:   valid,
			Promotion:      models.DefaultPromotion,
			SiteContent:    models.DefaultSiteContent,
			CurrentPalette: models.DefaultPalette,
		},
		Diagnostics: Diagnostics{
			RawTestimonials:      nonNil(testimonials),
			RejectedTestimonials: rejected,
			RejectedProducts:     nonNil(badProducts),
			RejectedTabs:         nonNil(badTabs),
		},
	}
	if promotion != nil {
		result.Snapshot.Promotion = *promotion
	}
	if siteContent != nil {
		result.Snapshot.SiteContent = *siteContent
	}
	if palette != nil {
		result.Snapshot.CurrentPalette = *palette
	}
	return result, nil
}

func (l *Loader) warnRejected(entity string, rejected []RejectedRecord) {
	for _, r := range rejected {
		l.logger.Warn("Excluded malformed "+entity, zap.String("reason", r.Reason), zap.Any("record", r.Record))
	}
}

// FilterTestimonials splits raw rows into the authoritative set and the
// rows excluded from it: nil rows, rows without a non-null id, duplicate
// ids, and rows that do not decode.
func FilterTestimonials(raw []store.Record) ([]models.Testimonial, []RejectedRecord) {
	valid := make([]models.Testimonial, 0, len(raw))
	rejected := []RejectedRecord{}
	seen := make(map[string]bool, len(raw))
	for _, rec := range raw {
		if rec == nil {
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: "empty record"})
			continue
		}
		id, ok := rec.ID()
		if !ok {
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: "missing id"})
			continue
		}
		if seen[id] {
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: "duplicate id " + id})
			continue
		}
		var t models.Testimonial
		if err := store.Decode(rec, &t); err != nil {
			rejected = append(rejected, RejectedRecord{Record: rec, Reason: err.Error()})
			continue
		}
		t.ID = id
		seen[id] = true
		valid = append(valid, t)
	}
	return valid, rejected
}

// NormalizeTabs returns tabs with exactly one home entry, first. A stored
// home row is kept (first occurrence wins); otherwise the default home tab
// is synthesized. Rows without an id and repeated ids are returned as
// rejected.
func NormalizeTabs(tabs []models.ThemeTab) ([]models.ThemeTab, []RejectedRecord) {
	home := models.DefaultHomeTab
	out := make([]models.ThemeTab, 1, len(tabs)+1)
	rejected := []RejectedRecord{}
	seen := map[string]bool{}
	for _, t := range tabs {
		switch {
		case t.ID == "":
			rejected = append(rejected, rejectTab(t, "missing id"))
		case seen[t.ID]:
			rejected = append(rejected, rejectTab(t, "duplicate id "+t.ID))
		case t.IsHome():
			seen[t.ID] = true
			home = t
		default:
			seen[t.ID] = true
			out = append(out, t)
		}
	}
	out[0] = home
	return out, rejected
}

func rejectTab(t models.ThemeTab, reason string) RejectedRecord {
	rec, err := store.Encode(t)
	if err != nil {
		rec = store.Record{"id": t.ID, "title": t.Title}
	}
	return RejectedRecord{Record: rec, Reason: reason}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
